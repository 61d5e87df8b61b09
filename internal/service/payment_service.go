package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/payline-checkout/internal/config"
	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"
	"github.com/payline-checkout/internal/queue"
	"github.com/payline-checkout/internal/repository"

	"go.uber.org/zap"
)

// GatewayClient Payline 网关客户端接口
type GatewayClient interface {
	DoWebPayment(ctx context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error)
	GetWebPaymentDetails(ctx context.Context, token string) (*payline.PaymentDetails, error)
}

// PaymentService 支付服务
type PaymentService struct {
	cfg         *config.PaylineConfig
	gateway     GatewayClient
	orderRepo   repository.OrderRepository
	attemptRepo repository.PaymentAttemptRepository
	queueClient *queue.Client
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.PaylineConfig, gateway GatewayClient, orderRepo repository.OrderRepository, attemptRepo repository.PaymentAttemptRepository, queueClient *queue.Client) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		gateway:     gateway,
		orderRepo:   orderRepo,
		attemptRepo: attemptRepo,
		queueClient: queueClient,
	}
}

// InitiatePaymentInput 发起支付请求
type InitiatePaymentInput struct {
	OrderID        uint
	UseInstallment bool
	ClientIP       string
	Context        context.Context
}

// InitiatePaymentResult 发起支付结果
type InitiatePaymentResult struct {
	RedirectURL string
	Token       string
	Attempt     *models.PaymentAttempt
}

// InitiatePayment 创建托管支付会话并返回收银台跳转地址
func (s *PaymentService) InitiatePayment(input InitiatePaymentInput) (*InitiatePaymentResult, error) {
	ctx := input.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := paymentLogger(
		"order_id", input.OrderID,
		"client_ip", strings.TrimSpace(input.ClientIP),
		"use_installment", input.UseInstallment,
	)
	log.Infow("payment_initiate_requested")

	if err := payline.ValidateConfig(s.gatewayConfig()); err != nil {
		log.Errorw("payment_initiate_config_invalid", "error", err)
		return nil, ErrPaymentNotEligible
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		log.Errorw("payment_initiate_order_fetch_failed", "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		log.Warnw("payment_initiate_order_not_found")
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		log.Warnw("payment_initiate_order_status_invalid", "current_status", order.Status)
		return nil, ErrOrderStatusInvalid
	}

	options := s.EvaluateCheckout(order, input.ClientIP)
	if !options.Eligible {
		log.Warnw("payment_initiate_not_eligible", "reason", options.Reason)
		return nil, ErrPaymentNotEligible
	}
	if input.UseInstallment && !options.InstallmentEligible {
		log.Warnw("payment_initiate_installment_not_eligible")
		return nil, ErrInstallmentNotEligible
	}

	req, err := s.buildWebPaymentRequest(order, input.UseInstallment)
	if err != nil {
		log.Warnw("payment_initiate_request_build_failed", "error", err)
		return nil, err
	}

	resp, err := s.gateway.DoWebPayment(ctx, req)
	if err != nil {
		log.Errorw("payment_initiate_gateway_failed", "error", err)
		return nil, ErrGatewayRequestFailed
	}
	if !resp.Result.Success() {
		log.Warnw("payment_initiate_gateway_refused",
			"result_code", resp.Result.Code,
			"long_message", resp.Result.LongMessage,
		)
		return nil, ErrGatewayRefused
	}

	now := time.Now()
	attempt := &models.PaymentAttempt{
		OrderID:      order.ID,
		Token:        resp.Token,
		Mode:         req.Payment.Mode,
		AmountCents:  req.Payment.Amount,
		CurrencyCode: req.Payment.Currency,
		Status:       constants.PaymentAttemptStatusInitiated,
		RedirectURL:  resp.RedirectURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		log.Errorw("payment_initiate_attempt_create_failed", "error", err)
		return nil, ErrAttemptUpdateFailed
	}

	log.Infow("payment_initiate_session_created",
		"order_ref", order.OrderRef,
		"token", resp.Token,
		"mode", req.Payment.Mode,
		"amount_cents", req.Payment.Amount,
	)
	return &InitiatePaymentResult{
		RedirectURL: resp.RedirectURL,
		Token:       resp.Token,
		Attempt:     attempt,
	}, nil
}

func (s *PaymentService) gatewayConfig() *payline.Config {
	if s.cfg == nil {
		return nil
	}
	return &payline.Config{
		MerchantID:     s.cfg.MerchantID,
		AccessKey:      s.cfg.AccessKey,
		Mode:           s.cfg.Mode,
		ContractNumber: s.cfg.ContractNumber,
		GatewayURL:     s.cfg.GatewayURL,
	}
}

func (s *PaymentService) callbackURL(path string) string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
	return base + path
}

func paymentLogger(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return logger.S()
	}
	return logger.SW(kv...)
}

func formatOrderID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
