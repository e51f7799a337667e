package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/httperr"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
	catalogQueries   queries.CatalogQueries
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands, catalogQueries queries.CatalogQueries) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
		catalogQueries:   catalogQueries,
	}
}

// @Summary Estimate checkout totals
// @Description Price the current cart against an address, coupon and shipping method
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.EstimateRequest true "Estimate request"
// @Success 200 {object} resdto.EstimateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/estimate [post]
func (h *CheckoutHandler) Estimate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("user context missing"), "Internal server error", nil)
		return
	}

	var req reqdto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.checkoutCommands.Estimate(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrInvalidAddress):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid address", nil)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrInsufficientStock):
			httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", stockDetail(err))
		case errors.Is(err, commands.ErrCouponNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
		case errors.Is(err, commands.ErrInvalidCoupon):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or expired coupon", nil)
		case errors.Is(err, commands.ErrCouponLimitReached):
			httperr.AbortWithError(c, http.StatusConflict, err, "Coupon usage limit reached", nil)
		case errors.Is(err, commands.ErrShippingMethodNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Shipping method not found", nil)
		case errors.Is(err, commands.ErrShippingMethodInactive):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Shipping method is not available", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromEstimateResult(result))
}

// @Summary Validate coupon
// @Description Check a coupon code against the current time and usage cap
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCouponRequest true "Coupon validation request"
// @Success 200 {object} resdto.CouponValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /coupons/validate [post]
func (h *CheckoutHandler) ValidateCoupon(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.checkoutCommands.ValidateCoupon(c.Request.Context(), req.Code, req.SubtotalCents)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponValidation(result))
}

// @Summary List shipping methods
// @Description List active shipping methods
// @Tags checkout
// @Produce json
// @Success 200 {array} resdto.ShippingMethodResponse
// @Router /shipping-methods [get]
func (h *CheckoutHandler) ListShippingMethods(c *gin.Context) {
	views, err := h.catalogQueries.ListShippingMethods(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ShippingMethodResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromShippingMethodView(view)
	}

	c.JSON(http.StatusOK, response)
}
