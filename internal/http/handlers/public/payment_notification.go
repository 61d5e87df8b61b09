package public

import (
	"errors"
	"net/http"

	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/service"

	"github.com/gin-gonic/gin"
)

// PaylineNotification 网关服务器对服务器通知。响应给网关的是纯文本，
// 网关只关心能否送达，这里始终以 200 应答可判定的业务结果。
func (h *Handler) PaylineNotification(c *gin.Context) {
	token := c.Query(constants.PaylineTokenParamNotification)
	if token == "" {
		token = c.Query(constants.PaylineTokenParamReturn)
	}
	if token == "" {
		logger.Warnw("payline_notification_missing_token", "client_ip", c.ClientIP())
		c.String(http.StatusOK, constants.PaylineNotifyBodyNoToken)
		return
	}

	result, err := h.PaymentService.Reconcile(c.Request.Context(), token)
	if err != nil {
		h.respondNotificationError(c, token, err)
		return
	}

	switch result.Outcome {
	case service.ReconcileConfirmed, service.ReconcileAlreadyConfirmed:
		c.String(http.StatusOK, constants.PaylineNotifyBodyOK)
	default:
		c.String(http.StatusOK, constants.PaylineNotifyBodyOrderCanceled)
	}
}

func (h *Handler) respondNotificationError(c *gin.Context, token string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		c.String(http.StatusOK, constants.PaylineNotifyBodyNoToken)
	case errors.Is(err, service.ErrMissingOrderReference):
		c.String(http.StatusOK, constants.PaylineNotifyBodyNoOrderRef)
	case errors.Is(err, service.ErrOrderNotFound):
		c.String(http.StatusOK, constants.PaylineNotifyBodyOrderNotFound)
	default:
		// 临时故障交给网关重试
		logger.Errorw("payline_notification_failed", "token", token, "error", err)
		c.String(http.StatusInternalServerError, "Retry later")
	}
}
