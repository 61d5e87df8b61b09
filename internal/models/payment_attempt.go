package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentAttempt 支付尝试记录表（每次跳转网关生成一条）
type PaymentAttempt struct {
	ID            uint           `gorm:"primarykey" json:"id"`                         // 主键
	OrderID       uint           `gorm:"index;not null" json:"order_id"`               // 订单ID
	Token         string         `gorm:"uniqueIndex;not null" json:"token"`            // 网关会话 token
	Mode          string         `gorm:"type:varchar(10);not null" json:"mode"`        // 支付模式（CPT/NX）
	AmountCents   int64          `gorm:"not null" json:"amount_cents"`                 // 金额（最小货币单位）
	CurrencyCode  string         `gorm:"type:varchar(3);not null" json:"currency_code"` // ISO 4217 数字币种码
	Status        string         `gorm:"index;not null" json:"status"`                 // 尝试状态
	RedirectURL   string         `gorm:"type:varchar(500)" json:"redirect_url"`        // 网关收银台地址
	ResultCode    string         `gorm:"type:varchar(10)" json:"result_code"`          // 网关结果码
	ResultMessage string         `gorm:"type:varchar(500)" json:"result_message"`      // 网关结果描述
	CallbackAt    *time.Time     `json:"callback_at"`                                  // 回调处理时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}
