package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

func TestCreateClass_RequiresPositiveCapacity(t *testing.T) {
	svc := NewClassService(newFakeClassRepo())

	_, err := svc.CreateClass(context.Background(), testTenant, dto.CreateClassRequest{
		Name:     "Middle 2 Algebra A",
		Capacity: 0,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestCreateClass_NewClassIsUnderEnrolled(t *testing.T) {
	svc := NewClassService(newFakeClassRepo())

	resp, err := svc.CreateClass(context.Background(), testTenant, dto.CreateClassRequest{
		Name:     "Middle 2 Algebra A",
		Subject:  "math",
		Capacity: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.EnrolledCount)
	assert.Equal(t, string(models.ClassStatusUnderEnrolled), resp.EnrollmentStatus)
}

func TestEnroll_FullClassConflicts(t *testing.T) {
	repo := newFakeClassRepo()
	class := repo.add(&models.Class{
		TenantID:      testTenant,
		Name:          "Middle 2 Algebra A",
		Capacity:      2,
		EnrolledCount: 2,
	})
	svc := NewClassService(repo)

	_, err := svc.Enroll(context.Background(), testTenant, class.ID)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestEnroll_CrossesIntoNearFull(t *testing.T) {
	repo := newFakeClassRepo()
	class := repo.add(&models.Class{
		TenantID:      testTenant,
		Name:          "Middle 2 Algebra A",
		Capacity:      20,
		EnrolledCount: 17,
	})
	svc := NewClassService(repo)

	resp, err := svc.Enroll(context.Background(), testTenant, class.ID)
	require.NoError(t, err)

	assert.Equal(t, 18, resp.EnrolledCount)
	assert.Equal(t, string(models.ClassStatusNearFull), resp.EnrollmentStatus)
}

func TestWithdraw_NeverBelowZero(t *testing.T) {
	repo := newFakeClassRepo()
	class := repo.add(&models.Class{
		TenantID: testTenant,
		Name:     "Middle 2 Algebra A",
		Capacity: 20,
	})
	svc := NewClassService(repo)

	resp, err := svc.Withdraw(context.Background(), testTenant, class.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.EnrolledCount)
	assert.Equal(t, 0, repo.classes[class.ID].EnrolledCount)
}

func TestGetClass_NotFound(t *testing.T) {
	svc := NewClassService(newFakeClassRepo())

	_, err := svc.GetClass(context.Background(), testTenant, "missing")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
