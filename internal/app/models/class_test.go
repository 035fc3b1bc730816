package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassEnrollmentStatus(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		enrolled int
		want     ClassEnrollmentStatus
	}{
		{"empty class", 20, 0, ClassStatusUnderEnrolled},
		{"below half", 20, 9, ClassStatusUnderEnrolled},
		{"half full", 20, 10, ClassStatusOK},
		{"just under near full", 20, 17, ClassStatusOK},
		{"ninety percent", 20, 18, ClassStatusNearFull},
		{"at capacity", 20, 20, ClassStatusFull},
		{"over capacity", 20, 22, ClassStatusFull},
		{"zero capacity", 0, 0, ClassStatusUnderEnrolled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Class{Capacity: tt.capacity, EnrolledCount: tt.enrolled}
			assert.Equal(t, tt.want, c.EnrollmentStatus())
		})
	}
}
