package service

import (
	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/currency"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"
)

const orderDateLayout = "02/01/2006 15:04"

// buildWebPaymentRequest 构造 doWebPayment 请求（金额转为最小货币单位）
func (s *PaymentService) buildWebPaymentRequest(order *models.Order, useInstallment bool) (*payline.WebPaymentRequest, error) {
	currencyCode, err := currency.NumericCode(order.Currency)
	if err != nil {
		return nil, err
	}

	amountCents := order.TotalAmount.Cents()
	mode := constants.PaylinePaymentModeOneShot
	var recurring *payline.Recurring
	if useInstallment {
		mode = constants.PaylinePaymentModeInstallment
		recurring = buildInstallmentPlan(amountCents)
	}

	req := &payline.WebPaymentRequest{
		ReturnURL:       s.callbackURL("/payline/return"),
		CancelURL:       s.callbackURL("/payline/cancel"),
		NotificationURL: s.callbackURL("/payline/notification"),
		Payment: payline.Payment{
			Amount:         amountCents,
			Currency:       currencyCode,
			Action:         constants.PaylineActionAuthCapture,
			Mode:           mode,
			ContractNumber: s.cfg.ContractNumber,
		},
		Recurring: recurring,
		Order: payline.OrderInfo{
			Ref:      order.OrderRef,
			Amount:   amountCents,
			Currency: currencyCode,
			Date:     order.CreatedAt.Format(orderDateLayout),
		},
		PrivateDataList: []payline.PrivateData{
			{Key: constants.PaylinePrivateDataKeyOrderID, Value: formatOrderID(order.ID)},
		},
	}
	return req, nil
}

// buildInstallmentPlan 三期分期：首期吸收除不尽的余数，保证三期合计等于总金额
func buildInstallmentPlan(amountCents int64) *payline.Recurring {
	count := int64(constants.PaylineInstallmentCount)
	base := amountCents / count
	return &payline.Recurring{
		FirstAmount:  base + amountCents%count,
		Amount:       base,
		BillingCycle: constants.PaylineBillingCycleMonthly,
		BillingLeft:  constants.PaylineInstallmentCount,
	}
}
