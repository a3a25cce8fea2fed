package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/organized-life/backend/internal/application/usecase/goal"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/integration/entrypoint/dto"
	"github.com/organized-life/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	listUseCase              *goal.ListGoalsUseCase
	createUseCase            *goal.CreateGoalUseCase
	getUseCase               *goal.GetGoalUseCase
	updateUseCase            *goal.UpdateGoalUseCase
	deleteUseCase            *goal.DeleteGoalUseCase
	addContributionUseCase   *goal.AddContributionUseCase
	listContributionsUseCase *goal.ListContributionsUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	addContributionUseCase *goal.AddContributionUseCase,
	listContributionsUseCase *goal.ListContributionsUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:              listUseCase,
		createUseCase:            createUseCase,
		getUseCase:               getUseCase,
		updateUseCase:            updateUseCase,
		deleteUseCase:            deleteUseCase,
		addContributionUseCase:   addContributionUseCase,
		listContributionsUseCase: listContributionsUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	input := goal.ListGoalsInput{UserID: userID}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.GoalStatus(statusStr)
		if !status.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "status must be one of active, completed, paused or cancelled",
				Code:  string(domainerror.ErrCodeInvalidGoalStatus),
			})
			return
		}
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		c.respondInvalidTargetDate(ctx)
		return
	}

	input := goal.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Type:         entity.GoalType(req.Type),
		TargetAmount: *req.TargetAmount,
		TargetDate:   targetDate,
		Icon:         req.Icon,
		Color:        req.Color,
	}
	if req.CurrentAmount != nil {
		input.CurrentAmount = *req.CurrentAmount
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		c.respondInvalidTargetDate(ctx)
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:          goalID,
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		TargetAmount:    req.TargetAmount,
		TargetDate:      targetDate,
		ClearTargetDate: req.ClearTargetDate,
		Icon:            req.Icon,
		Color:           req.Color,
	}
	if req.Type != nil {
		goalType := entity.GoalType(*req.Type)
		input.Type = &goalType
	}
	if req.Status != nil {
		status := entity.GoalStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddContribution handles POST /goals/:id/contributions requests.
func (c *GoalController) AddContribution(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.AddContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidContribution),
		})
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "date must use the YYYY-MM-DD format",
			Code:  string(domainerror.ErrCodeInvalidContribution),
		})
		return
	}

	output, err := c.addContributionUseCase.Execute(ctx.Request.Context(), goal.AddContributionInput{
		GoalID: goalID,
		UserID: userID,
		Amount: *req.Amount,
		Date:   date,
		Note:   req.Note,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AddContributionResponse{
		Goal:         dto.ToGoalResponse(output.Goal),
		Contribution: dto.ToContributionResponse(output.Contribution),
		Completed:    output.Completed,
	})
}

// ListContributions handles GET /goals/:id/contributions requests.
func (c *GoalController) ListContributions(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := parseIDParam(ctx, "id", "goal")
	if !ok {
		return
	}

	output, err := c.listContributionsUseCase.Execute(ctx.Request.Context(), goal.ListContributionsInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContributionListResponse(output.Contributions))
}

func (c *GoalController) respondInvalidTargetDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "target_date must use the YYYY-MM-DD format",
		Code:  string(domainerror.ErrCodeInvalidTargetDate),
	})
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		statusCode := c.getStatusCodeForGoalError(goalErr.Code)
		if statusCode == http.StatusConflict {
			ctx.Header("Retry-After", "1")
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func (c *GoalController) getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeGoalBusy:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidGoalType,
		domainerror.ErrCodeInvalidGoalAmount,
		domainerror.ErrCodeInvalidGoalStatus,
		domainerror.ErrCodeGoalNameRequired,
		domainerror.ErrCodeGoalNameTooLong,
		domainerror.ErrCodeMissingGoalFields,
		domainerror.ErrCodeInvalidTargetDate,
		domainerror.ErrCodeInvalidGoalColor,
		domainerror.ErrCodeInvalidContribution:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
