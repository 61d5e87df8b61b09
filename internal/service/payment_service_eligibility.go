package service

import (
	"strings"

	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"

	"github.com/shopspring/decimal"
)

// CheckoutOptions 结账时展示给客户端的支付可用性
type CheckoutOptions struct {
	Eligible            bool   `json:"eligible"`
	InstallmentEligible bool   `json:"installment_eligible"`
	Reason              string `json:"reason,omitempty"`
}

// EvaluateCheckout 判断订单能否走 Payline 支付，以及能否走三期分期
func (s *PaymentService) EvaluateCheckout(order *models.Order, clientIP string) CheckoutOptions {
	if order == nil {
		return CheckoutOptions{Reason: "order missing"}
	}
	if err := payline.ValidateConfig(s.gatewayConfig()); err != nil {
		return CheckoutOptions{Reason: "gateway not configured"}
	}

	// TEST 模式仅对白名单 IP 开放
	if strings.EqualFold(strings.TrimSpace(s.cfg.Mode), constants.PaylineModeTest) {
		if !ipAllowed(s.cfg.AllowedIPList, clientIP) {
			return CheckoutOptions{Reason: "client ip not in test allow list"}
		}
	}

	total := order.TotalAmount.Decimal
	if !amountWithinBounds(total, s.cfg.MinimumAmount, s.cfg.MaximumAmount) {
		return CheckoutOptions{Reason: "amount out of bounds"}
	}

	options := CheckoutOptions{Eligible: true}
	if s.cfg.ActivatePayment3x {
		options.InstallmentEligible = amountWithinBounds(total, s.cfg.MinimumAmount3x, s.cfg.MaximumAmount3x)
	}
	return options
}

// amountWithinBounds 校验金额上下限，0 表示不限
func amountWithinBounds(total decimal.Decimal, min, max float64) bool {
	if !total.IsPositive() {
		return false
	}
	if min > 0 && total.LessThan(decimal.NewFromFloat(min)) {
		return false
	}
	if max > 0 && total.GreaterThan(decimal.NewFromFloat(max)) {
		return false
	}
	return true
}

// ipAllowed 白名单按行分隔，逐行去除首尾空白后精确匹配
func ipAllowed(allowList, clientIP string) bool {
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		return false
	}
	for _, line := range strings.Split(allowList, "\n") {
		if strings.TrimSpace(line) == clientIP {
			return true
		}
	}
	return false
}
