package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// parseOptionalInt reads an optional integer query parameter under any of
// the given names. A missing parameter yields nil; a malformed one is a
// validation error.
func parseOptionalInt(ctx *gin.Context, names ...string) (*int, error) {
	for _, name := range names {
		raw := ctx.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidationError(name + " must be an integer")
		}
		return &v, nil
	}
	return nil, nil
}

// firstQuery returns the first non-empty query value among the given names
func firstQuery(ctx *gin.Context, names ...string) string {
	for _, name := range names {
		if v := ctx.Query(name); v != "" {
			return v
		}
	}
	return ""
}

// ListStudents handles the paginated, filterable student listing
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (limit is accepted as an alias)"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, err := parseOptionalInt(ctx, "page")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	pageSize, err := parseOptionalInt(ctx, "pageSize", "limit")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.studentService.ListStudents(ctx, services.ListStudentsInput{
		TenantID:   middleware.TenantID(ctx),
		Status:     ctx.Query("status"),
		GradeLevel: ctx.Query("gradeLevel"),
		Search:     ctx.Query("search"),
		SortBy:     firstQuery(ctx, "sortBy", "sort_by"),
		SortOrder:  firstQuery(ctx, "sortOrder", "sort_order"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: resp,
		Meta: &dto.PaginationInfo{
			CurrentPage: resp.Page,
			TotalPages:  resp.TotalPages,
			PageSize:    resp.PageSize,
			TotalItems:  resp.Total,
		},
	})
}

// CreateStudent handles student registration
// @Summary Register a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.studentService.CreateStudent(ctx, middleware.TenantID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetStudent retrieves a student by id
func (c *StudentController) GetStudent(ctx *gin.Context) {
	resp, err := c.studentService.GetStudent(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateStudent applies a partial update to a student
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.studentService.UpdateStudent(ctx, middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteStudent soft-deletes a student
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
