package public

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/service"

	"github.com/gin-gonic/gin"
)

// PaylineReturn 客户从收银台同步回跳。与服务器通知走同一对账入口，
// 先到达的一方生效，后到达的一方幂等。
func (h *Handler) PaylineReturn(c *gin.Context) {
	token := callbackToken(c)
	if token == "" {
		h.redirectErrorPage(c, "missing payment token")
		return
	}

	result, err := h.PaymentService.Reconcile(c.Request.Context(), token)
	if err != nil {
		logger.Warnw("payline_return_reconcile_failed", "token", token, "error", err)
		h.redirectErrorPage(c, "payment could not be verified")
		return
	}

	switch result.Outcome {
	case service.ReconcileConfirmed, service.ReconcileAlreadyConfirmed:
		h.redirectPage(c, h.Config.Payline.SuccessPageURL, result.Order.ID, "")
	default:
		h.redirectPage(c, h.Config.Payline.FailurePageURL, result.Order.ID, result.Message)
	}
}

// PaylineCancel 客户在收银台放弃支付后的回跳
func (h *Handler) PaylineCancel(c *gin.Context) {
	token := callbackToken(c)
	if token == "" {
		h.redirectErrorPage(c, "missing payment token")
		return
	}

	result, err := h.PaymentService.Reconcile(c.Request.Context(), token)
	if err != nil {
		logger.Warnw("payline_cancel_reconcile_failed", "token", token, "error", err)
		h.redirectErrorPage(c, "payment was canceled")
		return
	}

	// 放弃支付后网关极少返回成功，但对账结果仍以网关为准
	switch result.Outcome {
	case service.ReconcileConfirmed, service.ReconcileAlreadyConfirmed:
		h.redirectPage(c, h.Config.Payline.SuccessPageURL, result.Order.ID, "")
	default:
		message := result.Message
		if message == "" {
			message = "payment was canceled"
		}
		h.redirectPage(c, h.Config.Payline.FailurePageURL, result.Order.ID, message)
	}
}

// callbackToken 回跳优先取 token 参数，兼容网关带 paylinetoken 的场景
func callbackToken(c *gin.Context) string {
	if token := c.Query(constants.PaylineTokenParamReturn); token != "" {
		return token
	}
	return c.Query(constants.PaylineTokenParamNotification)
}

func (h *Handler) redirectPage(c *gin.Context, pageURL string, orderID uint, message string) {
	values := url.Values{}
	values.Set("order_id", fmt.Sprintf("%d", orderID))
	if message != "" {
		values.Set("message", message)
	}
	c.Redirect(http.StatusFound, appendQuery(pageURL, values))
}

func (h *Handler) redirectErrorPage(c *gin.Context, message string) {
	values := url.Values{}
	if message != "" {
		values.Set("message", message)
	}
	c.Redirect(http.StatusFound, appendQuery(h.Config.Payline.ErrorPageURL, values))
}

func appendQuery(rawURL string, values url.Values) string {
	if len(values) == 0 {
		return rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for key, items := range values {
		for _, item := range items {
			query.Set(key, item)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
