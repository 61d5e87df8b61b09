package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/payline-checkout/internal/config"
	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"
	"github.com/payline-checkout/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeGateway struct {
	doWebPayment         func(ctx context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error)
	getWebPaymentDetails func(ctx context.Context, token string) (*payline.PaymentDetails, error)
}

func (f *fakeGateway) DoWebPayment(ctx context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error) {
	return f.doWebPayment(ctx, req)
}

func (f *fakeGateway) GetWebPaymentDetails(ctx context.Context, token string) (*payline.PaymentDetails, error) {
	return f.getWebPaymentDetails(ctx, token)
}

func setupPaymentServiceTest(t *testing.T, cfg *config.PaylineConfig, gateway *fakeGateway) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.PaymentAttempt{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
	})

	svc := NewPaymentService(
		cfg,
		gateway,
		repository.NewOrderRepository(db),
		repository.NewPaymentAttemptRepository(db),
		nil,
	)
	return svc, db
}

func testPaylineConfig() *config.PaylineConfig {
	return &config.PaylineConfig{
		MerchantID:     "merchant-1",
		AccessKey:      "access-key",
		Mode:           constants.PaylineModeProduction,
		ContractNumber: "1234567",
		BaseURL:        "https://shop.example.com",
	}
}

func createTestOrder(t *testing.T, db *gorm.DB, status string, amount float64) *models.Order {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	order := &models.Order{
		OrderRef:      fmt.Sprintf("REF-%d", time.Now().UnixNano()),
		CustomerEmail: "buyer@example.com",
		Status:        status,
		Currency:      "EUR",
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(amount)),
		ClientIP:      "192.0.2.10",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func paidPaymentDetails(orderID uint, transactionID string) *payline.PaymentDetails {
	return &payline.PaymentDetails{
		Result:      payline.Result{Code: constants.PaylineResultCodeSuccess, ShortMessage: "ACCEPTED"},
		Transaction: payline.Transaction{ID: transactionID, Date: "02/01/2026 15:04"},
		PrivateDataList: []payline.PrivateData{
			{Key: constants.PaylinePrivateDataKeyOrderID, Value: strconv.FormatUint(uint64(orderID), 10)},
		},
	}
}

func TestBuildWebPaymentRequestOneShot(t *testing.T) {
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), &fakeGateway{})
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 59.90)

	req, err := svc.buildWebPaymentRequest(order, false)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	if req.Payment.Amount != 5990 {
		t.Errorf("expected amount 5990 cents, got %d", req.Payment.Amount)
	}
	if req.Payment.Currency != "978" {
		t.Errorf("expected currency 978, got %s", req.Payment.Currency)
	}
	if req.Payment.Action != constants.PaylineActionAuthCapture {
		t.Errorf("expected action %d, got %d", constants.PaylineActionAuthCapture, req.Payment.Action)
	}
	if req.Payment.Mode != constants.PaylinePaymentModeOneShot {
		t.Errorf("expected mode %s, got %s", constants.PaylinePaymentModeOneShot, req.Payment.Mode)
	}
	if req.Recurring != nil {
		t.Errorf("one-shot payment should not carry a recurring segment")
	}
	if req.Order.Ref != order.OrderRef {
		t.Errorf("expected order ref %s, got %s", order.OrderRef, req.Order.Ref)
	}
	if req.Order.Date != order.CreatedAt.Format("02/01/2006 15:04") {
		t.Errorf("unexpected order date %s", req.Order.Date)
	}
	if req.ReturnURL != "https://shop.example.com/payline/return" {
		t.Errorf("unexpected return url %s", req.ReturnURL)
	}
	if req.NotificationURL != "https://shop.example.com/payline/notification" {
		t.Errorf("unexpected notification url %s", req.NotificationURL)
	}
	if len(req.PrivateDataList) != 1 || req.PrivateDataList[0].Key != constants.PaylinePrivateDataKeyOrderID {
		t.Fatalf("expected orderId private data, got %+v", req.PrivateDataList)
	}
	if req.PrivateDataList[0].Value != strconv.FormatUint(uint64(order.ID), 10) {
		t.Errorf("expected private data value %d, got %s", order.ID, req.PrivateDataList[0].Value)
	}
}

func TestBuildInstallmentPlan(t *testing.T) {
	cases := []struct {
		amountCents int64
		firstAmount int64
		amount      int64
	}{
		{10000, 3334, 3333},
		{5990, 1998, 1996},
		{9999, 3333, 3333},
		{300, 100, 100},
	}
	for _, tc := range cases {
		plan := buildInstallmentPlan(tc.amountCents)
		if plan.FirstAmount != tc.firstAmount {
			t.Errorf("amount %d: expected first %d, got %d", tc.amountCents, tc.firstAmount, plan.FirstAmount)
		}
		if plan.Amount != tc.amount {
			t.Errorf("amount %d: expected installment %d, got %d", tc.amountCents, tc.amount, plan.Amount)
		}
		if total := plan.FirstAmount + 2*plan.Amount; total != tc.amountCents {
			t.Errorf("amount %d: installments sum to %d", tc.amountCents, total)
		}
		if plan.BillingCycle != constants.PaylineBillingCycleMonthly {
			t.Errorf("expected billing cycle %d, got %d", constants.PaylineBillingCycleMonthly, plan.BillingCycle)
		}
		if plan.BillingLeft != constants.PaylineInstallmentCount {
			t.Errorf("expected billing left %d, got %d", constants.PaylineInstallmentCount, plan.BillingLeft)
		}
	}
}

func TestEvaluateCheckout(t *testing.T) {
	order := &models.Order{
		Status:      constants.OrderStatusPendingPayment,
		Currency:    "EUR",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(150)),
	}

	cases := []struct {
		name        string
		mutate      func(cfg *config.PaylineConfig)
		clientIP    string
		eligible    bool
		installment bool
	}{
		{
			name:     "production mode no allow list required",
			mutate:   func(cfg *config.PaylineConfig) {},
			clientIP: "203.0.113.9",
			eligible: true,
		},
		{
			name: "test mode rejects unlisted ip",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.Mode = constants.PaylineModeTest
				cfg.AllowedIPList = "192.0.2.1\n192.0.2.2"
			},
			clientIP: "203.0.113.9",
			eligible: false,
		},
		{
			name: "test mode accepts listed ip with whitespace",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.Mode = constants.PaylineModeTest
				cfg.AllowedIPList = "  192.0.2.1 \n 203.0.113.9 \n"
			},
			clientIP: "203.0.113.9",
			eligible: true,
		},
		{
			name: "amount below minimum",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.MinimumAmount = 200
			},
			clientIP: "203.0.113.9",
			eligible: false,
		},
		{
			name: "amount above maximum",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.MaximumAmount = 100
			},
			clientIP: "203.0.113.9",
			eligible: false,
		},
		{
			name: "zero bounds are unbounded",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.MinimumAmount = 0
				cfg.MaximumAmount = 0
			},
			clientIP: "203.0.113.9",
			eligible: true,
		},
		{
			name: "installment enabled within bounds",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.ActivatePayment3x = true
				cfg.MinimumAmount3x = 100
				cfg.MaximumAmount3x = 1000
			},
			clientIP:    "203.0.113.9",
			eligible:    true,
			installment: true,
		},
		{
			name: "installment out of 3x bounds",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.ActivatePayment3x = true
				cfg.MinimumAmount3x = 500
			},
			clientIP:    "203.0.113.9",
			eligible:    true,
			installment: false,
		},
		{
			name: "installment disabled",
			mutate: func(cfg *config.PaylineConfig) {
				cfg.ActivatePayment3x = false
			},
			clientIP:    "203.0.113.9",
			eligible:    true,
			installment: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testPaylineConfig()
			tc.mutate(cfg)
			svc := NewPaymentService(cfg, &fakeGateway{}, nil, nil, nil)
			options := svc.EvaluateCheckout(order, tc.clientIP)
			if options.Eligible != tc.eligible {
				t.Errorf("expected eligible=%v, got %v (reason=%s)", tc.eligible, options.Eligible, options.Reason)
			}
			if options.InstallmentEligible != tc.installment {
				t.Errorf("expected installment=%v, got %v", tc.installment, options.InstallmentEligible)
			}
		})
	}
}

func TestEvaluateCheckoutInvalidConfig(t *testing.T) {
	cfg := testPaylineConfig()
	cfg.AccessKey = ""
	svc := NewPaymentService(cfg, &fakeGateway{}, nil, nil, nil)
	order := &models.Order{TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(50))}
	options := svc.EvaluateCheckout(order, "203.0.113.9")
	if options.Eligible {
		t.Fatal("expected not eligible with incomplete gateway config")
	}
	if options.Reason != "gateway not configured" {
		t.Errorf("unexpected reason %q", options.Reason)
	}
}

func TestInitiatePaymentSuccess(t *testing.T) {
	var captured *payline.WebPaymentRequest
	gateway := &fakeGateway{
		doWebPayment: func(_ context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error) {
			captured = req
			return &payline.WebPaymentResponse{
				Result:      payline.Result{Code: constants.PaylineResultCodeSuccess},
				Token:       "tok-123",
				RedirectURL: "https://payment.payline.com/checkout/tok-123",
			}, nil
		},
	}
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 59.90)

	result, err := svc.InitiatePayment(InitiatePaymentInput{OrderID: order.ID, ClientIP: "203.0.113.9"})
	if err != nil {
		t.Fatalf("initiate payment failed: %v", err)
	}
	if result.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %s", result.Token)
	}
	if result.RedirectURL != "https://payment.payline.com/checkout/tok-123" {
		t.Errorf("unexpected redirect url %s", result.RedirectURL)
	}
	if captured == nil || captured.Payment.Amount != 5990 {
		t.Fatalf("gateway did not receive expected request: %+v", captured)
	}

	var attempt models.PaymentAttempt
	if err := db.Where("token = ?", "tok-123").First(&attempt).Error; err != nil {
		t.Fatalf("payment attempt not persisted: %v", err)
	}
	if attempt.OrderID != order.ID {
		t.Errorf("expected attempt order id %d, got %d", order.ID, attempt.OrderID)
	}
	if attempt.Status != constants.PaymentAttemptStatusInitiated {
		t.Errorf("expected status %s, got %s", constants.PaymentAttemptStatusInitiated, attempt.Status)
	}
	if attempt.Mode != constants.PaylinePaymentModeOneShot {
		t.Errorf("expected mode %s, got %s", constants.PaylinePaymentModeOneShot, attempt.Mode)
	}
	if attempt.AmountCents != 5990 {
		t.Errorf("expected amount 5990, got %d", attempt.AmountCents)
	}
}

func TestInitiatePaymentInstallmentRequest(t *testing.T) {
	var captured *payline.WebPaymentRequest
	gateway := &fakeGateway{
		doWebPayment: func(_ context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error) {
			captured = req
			return &payline.WebPaymentResponse{
				Result:      payline.Result{Code: constants.PaylineResultCodeSuccess},
				Token:       "tok-nx",
				RedirectURL: "https://payment.payline.com/checkout/tok-nx",
			}, nil
		},
	}
	cfg := testPaylineConfig()
	cfg.ActivatePayment3x = true
	svc, db := setupPaymentServiceTest(t, cfg, gateway)
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 100)

	if _, err := svc.InitiatePayment(InitiatePaymentInput{OrderID: order.ID, UseInstallment: true, ClientIP: "203.0.113.9"}); err != nil {
		t.Fatalf("initiate installment payment failed: %v", err)
	}
	if captured.Payment.Mode != constants.PaylinePaymentModeInstallment {
		t.Errorf("expected mode %s, got %s", constants.PaylinePaymentModeInstallment, captured.Payment.Mode)
	}
	if captured.Recurring == nil {
		t.Fatal("expected recurring segment for installment payment")
	}
	if captured.Recurring.FirstAmount != 3334 || captured.Recurring.Amount != 3333 {
		t.Errorf("unexpected installment split: %+v", captured.Recurring)
	}
}

func TestInitiatePaymentInstallmentNotEligible(t *testing.T) {
	cfg := testPaylineConfig()
	cfg.ActivatePayment3x = false
	svc, db := setupPaymentServiceTest(t, cfg, &fakeGateway{})
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 100)

	_, err := svc.InitiatePayment(InitiatePaymentInput{OrderID: order.ID, UseInstallment: true, ClientIP: "203.0.113.9"})
	if !errors.Is(err, ErrInstallmentNotEligible) {
		t.Fatalf("expected ErrInstallmentNotEligible, got %v", err)
	}
}

func TestInitiatePaymentOrderStatusInvalid(t *testing.T) {
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), &fakeGateway{})
	order := createTestOrder(t, db, constants.OrderStatusPaid, 59.90)

	_, err := svc.InitiatePayment(InitiatePaymentInput{OrderID: order.ID, ClientIP: "203.0.113.9"})
	if !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestInitiatePaymentGatewayRefused(t *testing.T) {
	gateway := &fakeGateway{
		doWebPayment: func(_ context.Context, _ *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error) {
			return &payline.WebPaymentResponse{
				Result: payline.Result{Code: "02305", LongMessage: "Invalid contract number"},
			}, nil
		},
	}
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 59.90)

	_, err := svc.InitiatePayment(InitiatePaymentInput{OrderID: order.ID, ClientIP: "203.0.113.9"})
	if !errors.Is(err, ErrGatewayRefused) {
		t.Fatalf("expected ErrGatewayRefused, got %v", err)
	}
	var count int64
	db.Model(&models.PaymentAttempt{}).Count(&count)
	if count != 0 {
		t.Errorf("no attempt should be persisted after refusal, found %d", count)
	}
}

func TestReconcileConfirmsOrder(t *testing.T) {
	var svc *PaymentService
	var db *gorm.DB
	gateway := &fakeGateway{}
	svc, db = setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 59.90)
	attempt := models.PaymentAttempt{
		OrderID:      order.ID,
		Token:        "tok-confirm",
		Mode:         constants.PaylinePaymentModeOneShot,
		AmountCents:  5990,
		CurrencyCode: "978",
		Status:       constants.PaymentAttemptStatusInitiated,
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("create attempt failed: %v", err)
	}
	gateway.getWebPaymentDetails = func(_ context.Context, token string) (*payline.PaymentDetails, error) {
		if token != "tok-confirm" {
			t.Errorf("unexpected token %s", token)
		}
		return paidPaymentDetails(order.ID, "txn-42"), nil
	}

	result, err := svc.Reconcile(context.Background(), "tok-confirm")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if result.Outcome != ReconcileConfirmed {
		t.Fatalf("expected outcome %s, got %s", ReconcileConfirmed, result.Outcome)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPaid {
		t.Errorf("expected status %s, got %s", constants.OrderStatusPaid, stored.Status)
	}
	if stored.TransactionRef != "txn-42" {
		t.Errorf("expected transaction ref txn-42, got %s", stored.TransactionRef)
	}
	if stored.PaidAt == nil {
		t.Error("expected paid_at to be set")
	}

	var storedAttempt models.PaymentAttempt
	if err := db.First(&storedAttempt, attempt.ID).Error; err != nil {
		t.Fatalf("reload attempt failed: %v", err)
	}
	if storedAttempt.Status != constants.PaymentAttemptStatusSuccess {
		t.Errorf("expected attempt status %s, got %s", constants.PaymentAttemptStatusSuccess, storedAttempt.Status)
	}
	if storedAttempt.ResultCode != constants.PaylineResultCodeSuccess {
		t.Errorf("expected result code %s, got %s", constants.PaylineResultCodeSuccess, storedAttempt.ResultCode)
	}
	if storedAttempt.CallbackAt == nil {
		t.Error("expected callback_at to be set")
	}
}

func TestReconcileIdempotentWhenAlreadyPaid(t *testing.T) {
	gateway := &fakeGateway{}
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	order := createTestOrder(t, db, constants.OrderStatusPaid, 59.90)
	gateway.getWebPaymentDetails = func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
		details := paidPaymentDetails(order.ID, "")
		details.Result = payline.Result{Code: "02319", LongMessage: "Payment cancelled by the buyer"}
		return details, nil
	}

	result, err := svc.Reconcile(context.Background(), "tok-replay")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if result.Outcome != ReconcileAlreadyConfirmed {
		t.Fatalf("expected outcome %s, got %s", ReconcileAlreadyConfirmed, result.Outcome)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPaid {
		t.Errorf("paid order must stay paid, got %s", stored.Status)
	}
}

func TestReconcileRefusalCancelsOrder(t *testing.T) {
	gateway := &fakeGateway{}
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 59.90)
	attempt := models.PaymentAttempt{
		OrderID:     order.ID,
		Token:       "tok-refused",
		Mode:        constants.PaylinePaymentModeOneShot,
		AmountCents: 5990,
		Status:      constants.PaymentAttemptStatusInitiated,
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("create attempt failed: %v", err)
	}
	gateway.getWebPaymentDetails = func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
		details := paidPaymentDetails(order.ID, "")
		details.Result = payline.Result{Code: "02319", LongMessage: "Payment cancelled by the buyer"}
		return details, nil
	}

	result, err := svc.Reconcile(context.Background(), "tok-refused")
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if result.Outcome != ReconcileRefused {
		t.Fatalf("expected outcome %s, got %s", ReconcileRefused, result.Outcome)
	}
	if !strings.Contains(result.Message, "02319") {
		t.Errorf("expected message to carry the result code, got %q", result.Message)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusCanceled {
		t.Errorf("expected status %s, got %s", constants.OrderStatusCanceled, stored.Status)
	}
	if stored.CanceledAt == nil {
		t.Error("expected canceled_at to be set")
	}

	var storedAttempt models.PaymentAttempt
	if err := db.First(&storedAttempt, attempt.ID).Error; err != nil {
		t.Fatalf("reload attempt failed: %v", err)
	}
	if storedAttempt.Status != constants.PaymentAttemptStatusFailed {
		t.Errorf("expected attempt status %s, got %s", constants.PaymentAttemptStatusFailed, storedAttempt.Status)
	}
	if storedAttempt.ResultMessage == "" {
		t.Error("expected failure reason on attempt")
	}
}

func TestReconcileMissingOrderReference(t *testing.T) {
	gateway := &fakeGateway{
		getWebPaymentDetails: func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
			return &payline.PaymentDetails{
				Result:      payline.Result{Code: constants.PaylineResultCodeSuccess},
				Transaction: payline.Transaction{ID: "txn-1"},
			}, nil
		},
	}
	svc, db := setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	order := createTestOrder(t, db, constants.OrderStatusPendingPayment, 59.90)

	_, err := svc.Reconcile(context.Background(), "tok-noref")
	if !errors.Is(err, ErrMissingOrderReference) {
		t.Fatalf("expected ErrMissingOrderReference, got %v", err)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPendingPayment {
		t.Errorf("order must stay untouched, got status %s", stored.Status)
	}
}

func TestReconcileOrderNotFound(t *testing.T) {
	gateway := &fakeGateway{
		getWebPaymentDetails: func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
			return paidPaymentDetails(999999, "txn-1"), nil
		},
	}
	svc, _ := setupPaymentServiceTest(t, testPaylineConfig(), gateway)

	_, err := svc.Reconcile(context.Background(), "tok-ghost")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestReconcileMissingToken(t *testing.T) {
	svc, _ := setupPaymentServiceTest(t, testPaylineConfig(), &fakeGateway{})
	if _, err := svc.Reconcile(context.Background(), "   "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestReconcileGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{
		getWebPaymentDetails: func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc, _ := setupPaymentServiceTest(t, testPaylineConfig(), gateway)
	if _, err := svc.Reconcile(context.Background(), "tok-err"); !errors.Is(err, ErrGatewayRequestFailed) {
		t.Fatalf("expected ErrGatewayRequestFailed, got %v", err)
	}
}
