package queue

import (
	"encoding/json"

	"github.com/payline-checkout/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 订单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
)

// OrderConfirmationEmailPayload 订单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint `json:"order_id"`
	Paid    bool `json:"paid"`
}

// NewOrderConfirmationEmailTask 创建订单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}
