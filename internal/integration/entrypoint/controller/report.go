package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/organized-life/backend/internal/application/usecase/report"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/integration/entrypoint/dto"
	"github.com/organized-life/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles report and dashboard endpoints.
type ReportController struct {
	generateUseCase *report.GenerateReportUseCase
	overviewUseCase *report.GetOverviewUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	generateUseCase *report.GenerateReportUseCase,
	overviewUseCase *report.GetOverviewUseCase,
) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
		overviewUseCase: overviewUseCase,
	}
}

// Generate handles GET /reports requests.
func (c *ReportController) Generate(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), report.GenerateReportInput{
		UserID:    userID,
		Period:    ctx.Query("period"),
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(output.Report))
}

// Overview handles GET /dashboard/overview requests.
func (c *ReportController) Overview(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), report.GetOverviewInput{UserID: userID})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(c.getStatusCodeForReportError(reportErr.Code), dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func (c *ReportController) getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportPeriod,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeIncompleteDateRange,
		domainerror.ErrCodeInvalidDateFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
