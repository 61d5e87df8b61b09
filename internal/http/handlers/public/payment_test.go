package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/http/response"
	"github.com/payline-checkout/internal/payment/payline"

	"github.com/gin-gonic/gin"
)

func TestInitiatePaymentInvalidOrderID(t *testing.T) {
	h, _ := setupHandlerTest(t, &stubGateway{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders/abc/payline", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.InitiatePayment(c)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected code %d, got %d", response.CodeBadRequest, resp.StatusCode)
	}
}

func TestInitiatePaymentOrderNotFound(t *testing.T) {
	h, _ := setupHandlerTest(t, &stubGateway{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders/999999/payline", nil)
	c.Params = gin.Params{{Key: "id", Value: "999999"}}

	h.InitiatePayment(c)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("expected code %d, got %d", response.CodeNotFound, resp.StatusCode)
	}
}

func TestInitiatePaymentCreatesSession(t *testing.T) {
	gateway := &stubGateway{}
	gateway.doWebPayment = func(_ context.Context, req *payline.WebPaymentRequest) (*payline.WebPaymentResponse, error) {
		return &payline.WebPaymentResponse{
			Result:      payline.Result{Code: constants.PaylineResultCodeSuccess},
			Token:       "tok-handler",
			RedirectURL: "https://payment.payline.com/checkout/tok-handler",
		}, nil
	}
	h, db := setupHandlerTest(t, gateway)
	order := createHandlerTestOrder(t, db, constants.OrderStatusPendingPayment)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+strconv.FormatUint(uint64(order.ID), 10)+"/payline", strings.NewReader(`{"use_installment":false}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(order.ID), 10)}}

	h.InitiatePayment(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			RedirectURL string `json:"redirect_url"`
			Token       string `json:"token"`
			Mode        string `json:"mode"`
			AmountCents int64  `json:"amount_cents"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Token != "tok-handler" {
		t.Errorf("expected token tok-handler, got %s", resp.Data.Token)
	}
	if resp.Data.RedirectURL != "https://payment.payline.com/checkout/tok-handler" {
		t.Errorf("unexpected redirect url %s", resp.Data.RedirectURL)
	}
	if resp.Data.Mode != constants.PaylinePaymentModeOneShot {
		t.Errorf("expected mode %s, got %s", constants.PaylinePaymentModeOneShot, resp.Data.Mode)
	}
	if resp.Data.AmountCents != 5990 {
		t.Errorf("expected 5990 cents, got %d", resp.Data.AmountCents)
	}
}

func TestGetCheckoutOptions(t *testing.T) {
	h, db := setupHandlerTest(t, &stubGateway{})
	order := createHandlerTestOrder(t, db, constants.OrderStatusPendingPayment)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+strconv.FormatUint(uint64(order.ID), 10)+"/payline/options", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(order.ID), 10)}}

	h.GetCheckoutOptions(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data struct {
			Eligible            bool `json:"eligible"`
			InstallmentEligible bool `json:"installment_eligible"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Data.Eligible {
		t.Error("expected order to be eligible for payment")
	}
}
