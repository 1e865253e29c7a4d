package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub/internal/application/subscription/usecases"
	"talenthub/internal/shared/id"
	"talenthub/internal/shared/logger"
	"talenthub/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC      *usecases.CreatePlanUseCase
	updatePlanUC      *usecases.UpdatePlanUseCase
	getPlanUC         *usecases.GetPlanUseCase
	listPlansUC       *usecases.ListPlansUseCase
	listActivePlansUC *usecases.ListActivePlansUseCase
	activatePlanUC    *usecases.ActivatePlanUseCase
	deactivatePlanUC  *usecases.DeactivatePlanUseCase
	logger            logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	listActivePlansUC *usecases.ListActivePlansUseCase,
	activatePlanUC *usecases.ActivatePlanUseCase,
	deactivatePlanUC *usecases.DeactivatePlanUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:      createPlanUC,
		updatePlanUC:      updatePlanUC,
		getPlanUC:         getPlanUC,
		listPlansUC:       listPlansUC,
		listActivePlansUC: listActivePlansUC,
		activatePlanUC:    activatePlanUC,
		deactivatePlanUC:  deactivatePlanUC,
		logger:            logger,
	}
}

type CreatePlanRequest struct {
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	Category     string           `json:"category" binding:"required"`
	ProductLine  string           `json:"product_line" binding:"required,productline"`
	Ceilings     map[string]int64 `json:"ceilings" binding:"required,min=1"`
	ValidityDays int              `json:"validity_days" binding:"required,min=1"`
	Price        uint64           `json:"price"`
	Currency     string           `json:"currency" binding:"required,len=3"`
	SortOrder    int              `json:"sort_order"`
}

type UpdatePlanRequest struct {
	Description *string          `json:"description"`
	Price       *uint64          `json:"price"`
	Currency    *string          `json:"currency"`
	Ceilings    map[string]int64 `json:"ceilings"`
	SortOrder   *int             `json:"sort_order"`
}

type UpdatePlanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ListActivePlans serves the public catalog for one product line.
func (h *PlanHandler) ListActivePlans(c *gin.Context) {
	query := usecases.ListActivePlansQuery{
		ProductLine: c.Query("product_line"),
	}

	result, err := h.listActivePlansUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "sid", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), usecases.GetPlanQuery{PlanSID: planSID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListPlans is the admin listing across all statuses.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListPlansQuery{
		ProductLine: c.Query("product_line"),
		Status:      c.Query("status"),
		Category:    c.Query("category"),
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	}

	result, err := h.listPlansUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.Total, pagination.Page, pagination.PageSize)
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreatePlanCommand{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		ProductLine:  req.ProductLine,
		Ceilings:     req.Ceilings,
		ValidityDays: req.ValidityDays,
		Price:        req.Price,
		Currency:     req.Currency,
		SortOrder:    req.SortOrder,
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "sid", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_sid", planSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.UpdatePlanCommand{
		PlanSID:     planSID,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Ceilings:    req.Ceilings,
		SortOrder:   req.SortOrder,
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

// UpdatePlanStatus toggles catalog visibility. Deactivation never touches
// existing subscriptions.
func (h *PlanHandler) UpdatePlanStatus(c *gin.Context) {
	planSID, err := utils.ParseSIDParam(c, "sid", id.PrefixPlan, "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Status == "active" {
		result, err := h.activatePlanUC.Execute(c.Request.Context(), usecases.ActivatePlanCommand{PlanSID: planSID})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Plan activated successfully", result)
		return
	}

	result, err := h.deactivatePlanUC.Execute(c.Request.Context(), usecases.DeactivatePlanCommand{PlanSID: planSID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Plan deactivated successfully", result)
}
