package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/provider"
	"github.com/payline-checkout/internal/queue"
	"github.com/payline-checkout/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_confirmation_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_confirmation_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_confirmation_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_confirmation_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_confirmation_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail := strings.TrimSpace(order.CustomerEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_confirmation_email_skip_empty_receiver", "order_id", order.ID, "order_ref", order.OrderRef)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_confirmation_email_skip_email_service_nil", "order_id", order.ID, "order_ref", order.OrderRef)
		return nil
	}

	var reason string
	if !payload.Paid {
		if attempt, err := c.PaymentAttemptRepo.GetLatestByOrderID(order.ID); err == nil && attempt != nil {
			reason = strings.TrimSpace(attempt.ResultMessage)
		}
	}
	input := service.OrderConfirmationEmailInput{
		OrderRef: order.OrderRef,
		Paid:     payload.Paid,
		Amount:   order.TotalAmount,
		Currency: order.Currency,
		Reason:   reason,
	}
	if err := c.EmailService.SendOrderConfirmationEmail(receiverEmail, input); err != nil {
		if err == service.ErrEmailServiceDisabled || err == service.ErrEmailServiceNotConfigured {
			logger.Debugw("worker_confirmation_email_skip_disabled", "order_id", order.ID, "error", err)
			return nil
		}
		logger.Warnw("worker_confirmation_email_send_failed",
			"order_id", order.ID,
			"order_ref", order.OrderRef,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_confirmation_email_sent",
		"order_id", order.ID,
		"order_ref", order.OrderRef,
		"paid", payload.Paid,
	)
	return nil
}
