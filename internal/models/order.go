package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderRef       string         `gorm:"uniqueIndex;not null" json:"order_ref"`                     // 订单编号
	CustomerEmail  string         `gorm:"index" json:"customer_email,omitempty"`                     // 客户邮箱
	Status         string         `gorm:"index;not null" json:"status"`                              // 订单状态
	Currency       string         `gorm:"type:varchar(3);not null" json:"currency"`                  // 币种（ISO 4217 三字母码）
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额
	TransactionRef string         `gorm:"index" json:"transaction_ref,omitempty"`                    // 网关交易号
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`               // 下单客户端IP
	PaidAt         *time.Time     `gorm:"index" json:"paid_at"`                                      // 支付时间
	CanceledAt     *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Attempts []PaymentAttempt `gorm:"foreignKey:OrderID" json:"attempts,omitempty"` // 支付尝试记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
