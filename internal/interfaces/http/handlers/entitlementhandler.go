package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub/internal/application/entitlement/usecases"
	"talenthub/internal/interfaces/http/middleware"
	"talenthub/internal/shared/logger"
	"talenthub/internal/shared/utils"
)

type EntitlementHandler struct {
	authorizeFeatureUC *usecases.AuthorizeFeatureUseCase
	logger             logger.Interface
}

func NewEntitlementHandler(authorizeFeatureUC *usecases.AuthorizeFeatureUseCase, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{
		authorizeFeatureUC: authorizeFeatureUC,
		logger:             logger,
	}
}

type AuthorizeFeatureRequest struct {
	ProductLine string `json:"product_line" binding:"required,productline"`
	Feature     string `json:"feature" binding:"required"`
}

type DecisionResponse struct {
	Allowed         bool    `json:"allowed"`
	Reason          string  `json:"reason,omitempty"`
	SubscriptionSID string  `json:"subscription_sid,omitempty"`
	Feature         string  `json:"feature"`
	Remaining       *uint64 `json:"remaining,omitempty"`
}

// Authorize decides one unit of feature consumption and spends it when
// allowed. Denials come back with HTTP 200: they are decision outcomes
// the caller branches on, not request failures.
func (h *EntitlementHandler) Authorize(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AuthorizeFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for authorize", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.AuthorizeFeatureCommand{
		UserID:      userID,
		ProductLine: req.ProductLine,
		Feature:     req.Feature,
	}

	decision, err := h.authorizeFeatureUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", DecisionResponse{
		Allowed:         decision.Allowed,
		Reason:          string(decision.Reason),
		SubscriptionSID: decision.SubscriptionSID,
		Feature:         decision.Feature,
		Remaining:       decision.Remaining,
	})
}
