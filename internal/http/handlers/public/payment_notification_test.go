package public

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/payline-checkout/internal/config"
	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"
	"github.com/payline-checkout/internal/provider"
	"github.com/payline-checkout/internal/repository"
	"github.com/payline-checkout/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubGateway struct {
	doWebPayment func(ctx context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error)
	details      func(ctx context.Context, token string) (*payline.PaymentDetails, error)
}

func (s *stubGateway) DoWebPayment(ctx context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error) {
	if s.doWebPayment == nil {
		return nil, fmt.Errorf("not implemented")
	}
	return s.doWebPayment(ctx, req)
}

func (s *stubGateway) GetWebPaymentDetails(ctx context.Context, token string) (*payline.PaymentDetails, error) {
	return s.details(ctx, token)
}

func setupHandlerTest(t *testing.T, gateway *stubGateway) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	cfg := &config.Config{}
	cfg.Payline = config.PaylineConfig{
		MerchantID:     "merchant-1",
		AccessKey:      "access-key",
		Mode:           constants.PaylineModeProduction,
		ContractNumber: "1234567",
		BaseURL:        "https://shop.example.com",
		SuccessPageURL: "https://shop.example.com/checkout/success",
		FailurePageURL: "https://shop.example.com/checkout/failure",
		ErrorPageURL:   "https://shop.example.com/checkout/error",
	}

	orderRepo := repository.NewOrderRepository(db)
	attemptRepo := repository.NewPaymentAttemptRepository(db)
	container := &provider.Container{
		Config:             cfg,
		OrderRepo:          orderRepo,
		PaymentAttemptRepo: attemptRepo,
		PaymentService:     service.NewPaymentService(&cfg.Payline, gateway, orderRepo, attemptRepo, nil),
	}
	return New(container), db
}

func createHandlerTestOrder(t *testing.T, db *gorm.DB, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderRef:      fmt.Sprintf("REF-%d", time.Now().UnixNano()),
		CustomerEmail: "buyer@example.com",
		Status:        status,
		Currency:      "EUR",
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(59.90)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func confirmedDetails(orderID uint) *payline.PaymentDetails {
	return &payline.PaymentDetails{
		Result:      payline.Result{Code: constants.PaylineResultCodeSuccess},
		Transaction: payline.Transaction{ID: "txn-1"},
		PrivateDataList: []payline.PrivateData{
			{Key: constants.PaylinePrivateDataKeyOrderID, Value: strconv.FormatUint(uint64(orderID), 10)},
		},
	}
}

func notificationRequest(token string) *http.Request {
	target := "/payline/notification"
	if token != "" {
		target += "?" + constants.PaylineTokenParamNotification + "=" + token
	}
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestPaylineNotificationMissingToken(t *testing.T) {
	h, _ := setupHandlerTest(t, &stubGateway{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = notificationRequest("")

	h.PaylineNotification(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != constants.PaylineNotifyBodyNoToken {
		t.Fatalf("expected body %q, got %q", constants.PaylineNotifyBodyNoToken, got)
	}
}

func TestPaylineNotificationConfirmed(t *testing.T) {
	gateway := &stubGateway{}
	h, db := setupHandlerTest(t, gateway)
	order := createHandlerTestOrder(t, db, constants.OrderStatusPendingPayment)
	gateway.details = func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
		return confirmedDetails(order.ID), nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = notificationRequest("tok-1")

	h.PaylineNotification(c)

	if got := strings.TrimSpace(w.Body.String()); got != constants.PaylineNotifyBodyOK {
		t.Fatalf("expected body %q, got %q", constants.PaylineNotifyBodyOK, got)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPaid {
		t.Errorf("expected order status %s, got %s", constants.OrderStatusPaid, stored.Status)
	}
}

func TestPaylineNotificationRefused(t *testing.T) {
	gateway := &stubGateway{}
	h, db := setupHandlerTest(t, gateway)
	order := createHandlerTestOrder(t, db, constants.OrderStatusPendingPayment)
	gateway.details = func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
		details := confirmedDetails(order.ID)
		details.Transaction = payline.Transaction{}
		details.Result = payline.Result{Code: "02319", LongMessage: "Payment cancelled by the buyer"}
		return details, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = notificationRequest("tok-2")

	h.PaylineNotification(c)

	if got := strings.TrimSpace(w.Body.String()); got != constants.PaylineNotifyBodyOrderCanceled {
		t.Fatalf("expected body %q, got %q", constants.PaylineNotifyBodyOrderCanceled, got)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusCanceled {
		t.Errorf("expected order status %s, got %s", constants.OrderStatusCanceled, stored.Status)
	}
}

func TestPaylineNotificationNoOrderReference(t *testing.T) {
	gateway := &stubGateway{
		details: func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
			return &payline.PaymentDetails{
				Result:      payline.Result{Code: constants.PaylineResultCodeSuccess},
				Transaction: payline.Transaction{ID: "txn-1"},
			}, nil
		},
	}
	h, _ := setupHandlerTest(t, gateway)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = notificationRequest("tok-3")

	h.PaylineNotification(c)

	if got := strings.TrimSpace(w.Body.String()); got != constants.PaylineNotifyBodyNoOrderRef {
		t.Fatalf("expected body %q, got %q", constants.PaylineNotifyBodyNoOrderRef, got)
	}
}

func TestPaylineNotificationOrderNotFound(t *testing.T) {
	gateway := &stubGateway{
		details: func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
			return confirmedDetails(999999), nil
		},
	}
	h, _ := setupHandlerTest(t, gateway)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = notificationRequest("tok-4")

	h.PaylineNotification(c)

	if got := strings.TrimSpace(w.Body.String()); got != constants.PaylineNotifyBodyOrderNotFound {
		t.Fatalf("expected body %q, got %q", constants.PaylineNotifyBodyOrderNotFound, got)
	}
}

func TestPaylineNotificationTransientFailure(t *testing.T) {
	gateway := &stubGateway{
		details: func(_ context.Context, _ string) (*payline.PaymentDetails, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}
	h, _ := setupHandlerTest(t, gateway)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = notificationRequest("tok-5")

	h.PaylineNotification(c)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d so the gateway retries, got %d", http.StatusInternalServerError, w.Code)
	}
}
