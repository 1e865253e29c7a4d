package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub/internal/application/subscription/usecases"
	"talenthub/internal/interfaces/http/middleware"
	"talenthub/internal/shared/id"
	"talenthub/internal/shared/logger"
	"talenthub/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC    *usecases.CreateSubscriptionUseCase
	cancelSubscriptionUC    *usecases.CancelSubscriptionUseCase
	renewSubscriptionUC     *usecases.RenewSubscriptionUseCase
	getActiveSubscriptionUC *usecases.GetActiveSubscriptionUseCase
	listUserSubscriptionsUC *usecases.ListUserSubscriptionsUseCase
	getUsageUC              *usecases.GetUsageUseCase
	logger                  logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
	renewSubscriptionUC *usecases.RenewSubscriptionUseCase,
	getActiveSubscriptionUC *usecases.GetActiveSubscriptionUseCase,
	listUserSubscriptionsUC *usecases.ListUserSubscriptionsUseCase,
	getUsageUC *usecases.GetUsageUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC:    createSubscriptionUC,
		cancelSubscriptionUC:    cancelSubscriptionUC,
		renewSubscriptionUC:     renewSubscriptionUC,
		getActiveSubscriptionUC: getActiveSubscriptionUC,
		listUserSubscriptionsUC: listUserSubscriptionsUC,
		getUsageUC:              getUsageUC,
		logger:                  logger,
	}
}

type CreateSubscriptionRequest struct {
	PlanSID   string `json:"plan_sid" binding:"required"`
	AutoRenew bool   `json:"auto_renew"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		UserID:    userID,
		PlanSID:   req.PlanSID,
		AutoRenew: req.AutoRenew,
	}

	result, err := h.createSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

// GetActiveSubscription returns the caller's usable subscription for one
// product line. Having none is a normal outcome, served as null data.
func (h *SubscriptionHandler) GetActiveSubscription(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	query := usecases.GetActiveSubscriptionQuery{
		UserID:      userID,
		ProductLine: c.Query("product_line"),
	}

	result, err := h.getActiveSubscriptionUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) ListMySubscriptions(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.listUserSubscriptionsUC.Execute(c.Request.Context(), usecases.ListUserSubscriptionsQuery{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	subscriptionSID, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelSubscriptionCommand{
		UserID:          userID,
		SubscriptionSID: subscriptionSID,
		IsAdmin:         middleware.IsAdmin(c),
	}

	result, err := h.cancelSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", result)
}

func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	subscriptionSID, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RenewSubscriptionCommand{
		UserID:          userID,
		SubscriptionSID: subscriptionSID,
	}

	result, err := h.renewSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription renewed successfully")
}

// GetUsage reports consumption against every granted feature of the
// subscription's plan, including unconsumed features at zero.
func (h *SubscriptionHandler) GetUsage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	subscriptionSID, err := utils.ParseSIDParam(c, "sid", id.PrefixSubscription, "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetUsageQuery{
		UserID:          userID,
		SubscriptionSID: subscriptionSID,
		IsAdmin:         middleware.IsAdmin(c),
	}

	result, err := h.getUsageUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
