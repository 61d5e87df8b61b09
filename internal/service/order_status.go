package service

import "github.com/payline-checkout/internal/constants"

// allowedTransitions 订单状态机：待支付订单才能被支付或取消
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPendingPayment: {
		constants.OrderStatusPaid:     true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusPaid:     {},
	constants.OrderStatusCanceled: {},
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}
