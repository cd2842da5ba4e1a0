package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
	"github.com/pr17-lab/sata-backend/internal/app/services"
	"github.com/pr17-lab/sata-backend/internal/middleware"
)

// AnalyticsController handles derived academic views.
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

func parseStudentIDQuery(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Query("studentId"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID").
			WithField("studentId").
			WithDetails("studentId query parameter must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// GPATrend returns a student's GPA series with a trend label.
func (c *AnalyticsController) GPATrend(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	trend, err := c.analyticsService.GPATrend(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(trend))
}

// SubjectPerformance ranks a student's subjects by mean marks.
func (c *AnalyticsController) SubjectPerformance(ctx *gin.Context) {
	id, ok := parseStudentIDQuery(ctx)
	if !ok {
		return
	}

	performance, err := c.analyticsService.SubjectPerformance(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(performance))
}

// SemesterComparison summarizes each term against the others.
func (c *AnalyticsController) SemesterComparison(ctx *gin.Context) {
	id, ok := parseStudentIDQuery(ctx)
	if !ok {
		return
	}

	comparison, err := c.analyticsService.SemesterComparison(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(comparison))
}

// StudentSummary returns the headline analytics for one student.
func (c *AnalyticsController) StudentSummary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	summary, err := c.analyticsService.StudentSummary(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

// CohortStats aggregates GPA statistics for a (branch, semester) cohort.
func (c *AnalyticsController) CohortStats(ctx *gin.Context) {
	branch := ctx.Query("branch")
	if branch == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Branch is required").
			WithField("branch")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := strconv.Atoi(ctx.Query("semester"))
	if err != nil || semester < 1 || semester > 10 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester").
			WithField("semester").
			WithDetails("semester must be a number between 1 and 10")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	stats, err := c.analyticsService.CohortStats(ctx, branch, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// Overview aggregates across the whole student population.
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit").
				WithField("limit")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		limit = parsed
	}

	overview, err := c.analyticsService.Overview(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}
