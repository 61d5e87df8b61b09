package repository

import (
	"errors"

	"github.com/payline-checkout/internal/models"

	"gorm.io/gorm"
)

// PaymentAttemptRepository 支付尝试数据访问接口
type PaymentAttemptRepository interface {
	Create(attempt *models.PaymentAttempt) error
	GetByToken(token string) (*models.PaymentAttempt, error)
	GetLatestByOrderID(orderID uint) (*models.PaymentAttempt, error)
	Update(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormPaymentAttemptRepository
}

// GormPaymentAttemptRepository GORM 实现
type GormPaymentAttemptRepository struct {
	db *gorm.DB
}

// NewPaymentAttemptRepository 创建支付尝试仓库
func NewPaymentAttemptRepository(db *gorm.DB) *GormPaymentAttemptRepository {
	return &GormPaymentAttemptRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentAttemptRepository) WithTx(tx *gorm.DB) *GormPaymentAttemptRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentAttemptRepository{db: tx}
}

// Create 创建支付尝试记录
func (r *GormPaymentAttemptRepository) Create(attempt *models.PaymentAttempt) error {
	return r.db.Create(attempt).Error
}

// GetByToken 根据网关 token 获取支付尝试
func (r *GormPaymentAttemptRepository) GetByToken(token string) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	if err := r.db.Where("token = ?", token).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// GetLatestByOrderID 获取订单最近一次支付尝试
func (r *GormPaymentAttemptRepository) GetLatestByOrderID(orderID uint) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	if err := r.db.Where("order_id = ?", orderID).Order("id desc").First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// Update 更新支付尝试记录
func (r *GormPaymentAttemptRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.PaymentAttempt{}).Where("id = ?", id).Updates(updates).Error
}
