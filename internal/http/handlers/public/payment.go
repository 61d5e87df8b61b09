package public

import (
	"errors"
	"strconv"

	"github.com/payline-checkout/internal/http/response"
	"github.com/payline-checkout/internal/service"

	"github.com/gin-gonic/gin"
)

// InitiatePaymentRequest 发起支付请求
type InitiatePaymentRequest struct {
	UseInstallment bool `json:"use_installment"`
}

// InitiatePayment 创建 Payline 托管支付会话
func (h *Handler) InitiatePayment(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req InitiatePaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	result, err := h.PaymentService.InitiatePayment(service.InitiatePaymentInput{
		OrderID:        orderID,
		UseInstallment: req.UseInstallment,
		ClientIP:       c.ClientIP(),
		Context:        c.Request.Context(),
	})
	if err != nil {
		respondInitiateError(c, err)
		return
	}

	response.Success(c, gin.H{
		"redirect_url": result.RedirectURL,
		"token":        result.Token,
		"mode":         result.Attempt.Mode,
		"amount_cents": result.Attempt.AmountCents,
	})
}

// GetCheckoutOptions 查询订单的 Payline 支付可用性
func (h *Handler) GetCheckoutOptions(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.OrderRepo.GetByID(orderID)
	if err != nil {
		response.Error(c, response.CodeInternal, "order fetch failed")
		return
	}
	if order == nil {
		response.NotFound(c, "order not found")
		return
	}

	options := h.PaymentService.EvaluateCheckout(order, c.ClientIP())
	response.Success(c, options)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid order id")
		return 0, false
	}
	return uint(id), true
}

func respondInitiateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, service.ErrOrderStatusInvalid):
		response.Error(c, response.CodeConflict, "order is not awaiting payment")
	case errors.Is(err, service.ErrPaymentNotEligible):
		response.Error(c, response.CodeBadRequest, "payment not available for this order")
	case errors.Is(err, service.ErrInstallmentNotEligible):
		response.Error(c, response.CodeBadRequest, "installment payment not available for this order")
	case errors.Is(err, service.ErrGatewayRefused):
		response.Error(c, response.CodeBadGateway, "payment gateway refused the session")
	case errors.Is(err, service.ErrGatewayRequestFailed):
		response.Error(c, response.CodeBadGateway, "payment gateway unavailable")
	default:
		response.Error(c, response.CodeInternal, "payment initiation failed")
	}
}
