package public

import (
	"github.com/payline-checkout/internal/cache"
	"github.com/payline-checkout/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrder 查询订单及其最近一次支付尝试
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var cached map[string]interface{}
	if hit, err := cache.GetOrderDetail(c.Request.Context(), orderID, &cached); err == nil && hit {
		response.Success(c, cached)
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

	attempt, err := h.PaymentAttemptRepo.GetLatestByOrderID(order.ID)
	if err != nil {
		response.Error(c, response.CodeInternal, "payment attempt fetch failed")
		return
	}

	resp := gin.H{"order": order}
	if attempt != nil {
		resp["latest_attempt"] = attempt
	}
	_ = cache.SetOrderDetail(c.Request.Context(), orderID, resp)
	response.Success(c, resp)
}
