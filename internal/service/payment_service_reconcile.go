package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/payline-checkout/internal/cache"
	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"
	"github.com/payline-checkout/internal/queue"
	"github.com/payline-checkout/internal/repository"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconcileOutcome 对账结果
type ReconcileOutcome string

const (
	// ReconcileConfirmed 支付确认，订单转为已支付
	ReconcileConfirmed ReconcileOutcome = "confirmed"
	// ReconcileAlreadyConfirmed 订单此前已支付，本次回调幂等跳过
	ReconcileAlreadyConfirmed ReconcileOutcome = "already_confirmed"
	// ReconcileRefused 支付被拒绝或放弃，订单转为已取消
	ReconcileRefused ReconcileOutcome = "refused"
)

// ReconcileResult 对账处理结果
type ReconcileResult struct {
	Outcome ReconcileOutcome
	Order   *models.Order
	Message string
}

// Reconcile 以网关查询结果为准更新订单状态。通知回调与同步回跳共用同一入口，
// 同一 token 重复触发时结果幂等。
func (s *PaymentService) Reconcile(ctx context.Context, token string) (*ReconcileResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := paymentLogger("token", token)
	log.Infow("payment_reconcile_started")

	if err := payline.ValidateConfig(s.gatewayConfig()); err != nil {
		log.Errorw("payment_reconcile_config_invalid", "error", err)
		return nil, ErrGatewayRequestFailed
	}

	details, err := s.gateway.GetWebPaymentDetails(ctx, token)
	if err != nil {
		log.Errorw("payment_reconcile_gateway_failed", "error", err)
		return nil, ErrGatewayRequestFailed
	}

	orderIDValue, ok := details.PrivateValue(constants.PaylinePrivateDataKeyOrderID)
	if !ok || strings.TrimSpace(orderIDValue) == "" {
		log.Warnw("payment_reconcile_order_reference_missing")
		return nil, ErrMissingOrderReference
	}
	orderID, err := strconv.ParseUint(strings.TrimSpace(orderIDValue), 10, 64)
	if err != nil {
		log.Warnw("payment_reconcile_order_reference_invalid", "order_id_value", orderIDValue)
		return nil, ErrMissingOrderReference
	}

	order, err := s.orderRepo.GetByID(uint(orderID))
	if err != nil {
		log.Errorw("payment_reconcile_order_fetch_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		log.Warnw("payment_reconcile_order_not_found", "order_id", orderID)
		return nil, ErrOrderNotFound
	}
	log = paymentLogger(
		"token", token,
		"order_id", order.ID,
		"order_ref", order.OrderRef,
		"result_code", details.Result.Code,
	)

	// 幂等处理：已支付的订单不再回退状态
	if order.Status == constants.OrderStatusPaid {
		log.Infow("payment_reconcile_idempotent_paid")
		s.updateAttemptMeta(token, details, log)
		return &ReconcileResult{Outcome: ReconcileAlreadyConfirmed, Order: order}, nil
	}

	now := time.Now()
	if details.Transaction.ID != "" && details.Result.Success() {
		if err := s.confirmOrder(order, token, details, now); err != nil {
			log.Errorw("payment_reconcile_confirm_failed", "error", err)
			return nil, err
		}
		log.Infow("payment_reconcile_confirmed", "transaction_id", details.Transaction.ID)
		_ = cache.DelOrderDetail(ctx, order.ID)
		s.enqueueConfirmationEmailAsync(order, true, log)
		return &ReconcileResult{Outcome: ReconcileConfirmed, Order: order}, nil
	}

	message := refusalMessage(details.Result)
	if err := s.cancelOrder(order, token, details, message, now); err != nil {
		log.Errorw("payment_reconcile_cancel_failed", "error", err)
		return nil, err
	}
	log.Infow("payment_reconcile_refused", "reason", message)
	_ = cache.DelOrderDetail(ctx, order.ID)
	if !s.cfg.SendConfirmationOnlyIfPaid {
		s.enqueueConfirmationEmailAsync(order, false, log)
	}
	return &ReconcileResult{Outcome: ReconcileRefused, Order: order, Message: message}, nil
}

// confirmOrder 事务内更新订单为已支付并回写支付尝试
func (s *PaymentService) confirmOrder(order *models.Order, token string, details *payline.PaymentDetails, now time.Time) error {
	if !isTransitionAllowed(order.Status, constants.OrderStatusPaid) {
		return ErrOrderStatusInvalid
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		attemptRepo := s.attemptRepo.WithTx(tx)

		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{
			"transaction_ref": details.Transaction.ID,
			"paid_at":         now,
			"updated_at":      now,
		}); err != nil {
			return ErrOrderUpdateFailed
		}
		return s.applyAttemptResult(attemptRepo, token, constants.PaymentAttemptStatusSuccess, details, "", now)
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusPaid
	order.TransactionRef = details.Transaction.ID
	order.PaidAt = &now
	order.UpdatedAt = now
	return nil
}

// cancelOrder 事务内取消订单并回写支付尝试失败原因
func (s *PaymentService) cancelOrder(order *models.Order, token string, details *payline.PaymentDetails, message string, now time.Time) error {
	if !isTransitionAllowed(order.Status, constants.OrderStatusCanceled) {
		return ErrOrderStatusInvalid
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		attemptRepo := s.attemptRepo.WithTx(tx)

		if order.Status != constants.OrderStatusCanceled {
			if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusCanceled, map[string]interface{}{
				"canceled_at": now,
				"updated_at":  now,
			}); err != nil {
				return ErrOrderUpdateFailed
			}
		}
		return s.applyAttemptResult(attemptRepo, token, constants.PaymentAttemptStatusFailed, details, message, now)
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusCanceled
	order.CanceledAt = &now
	order.UpdatedAt = now
	return nil
}

func (s *PaymentService) applyAttemptResult(attemptRepo *repository.GormPaymentAttemptRepository, token, status string, details *payline.PaymentDetails, message string, now time.Time) error {
	attempt, err := attemptRepo.GetByToken(token)
	if err != nil {
		return ErrAttemptUpdateFailed
	}
	if attempt == nil {
		// 会话可能由其他实例创建后丢失，不视为致命错误
		return nil
	}
	updates := map[string]interface{}{
		"status":      status,
		"result_code": details.Result.Code,
		"callback_at": now,
		"updated_at":  now,
	}
	if message != "" {
		updates["result_message"] = message
	} else if details.Result.LongMessage != "" {
		updates["result_message"] = details.Result.LongMessage
	}
	if err := attemptRepo.Update(attempt.ID, updates); err != nil {
		return ErrAttemptUpdateFailed
	}
	return nil
}

// updateAttemptMeta 幂等路径下仅补记回调元信息
func (s *PaymentService) updateAttemptMeta(token string, details *payline.PaymentDetails, log *zap.SugaredLogger) {
	attempt, err := s.attemptRepo.GetByToken(token)
	if err != nil || attempt == nil {
		return
	}
	if attempt.CallbackAt != nil {
		return
	}
	now := time.Now()
	if err := s.attemptRepo.Update(attempt.ID, map[string]interface{}{
		"result_code": details.Result.Code,
		"callback_at": now,
		"updated_at":  now,
	}); err != nil {
		log.Warnw("payment_reconcile_attempt_meta_update_failed", "error", err)
	}
}

// refusalMessage 从网关结果拼接取消原因，缺失时给出通用文案
func refusalMessage(result payline.Result) string {
	code := strings.TrimSpace(result.Code)
	long := strings.TrimSpace(result.LongMessage)
	switch {
	case code != "" && long != "":
		return fmt.Sprintf("payment refused (%s): %s", code, long)
	case code != "":
		return fmt.Sprintf("payment refused (%s)", code)
	case long != "":
		return long
	default:
		return "payment was not completed"
	}
}

func (s *PaymentService) enqueueConfirmationEmailAsync(order *models.Order, paid bool, log *zap.SugaredLogger) {
	if s.queueClient == nil || order == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{
		OrderID: order.ID,
		Paid:    paid,
	}, asynq.MaxRetry(3)); err != nil {
		log.Warnw("payment_enqueue_confirmation_email_failed",
			"order_id", order.ID,
			"order_ref", order.OrderRef,
			"error", err,
		)
	}
}
