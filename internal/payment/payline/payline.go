package payline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/payline-checkout/internal/constants"
)

const (
	// HomologationBaseURL 联调环境网关地址
	HomologationBaseURL = "https://homologation-payment.payline.com"
	// ProductionBaseURL 生产环境网关地址
	ProductionBaseURL = "https://payment.payline.com"

	doWebPaymentPath         = "/V4/services/doWebPayment"
	getWebPaymentDetailsPath = "/V4/services/getWebPaymentDetails"
)

var (
	ErrConfigInvalid   = errors.New("payline config invalid")
	ErrRequestFailed   = errors.New("payline request failed")
	ErrResponseInvalid = errors.New("payline response invalid")
)

// Config Payline 网关配置
type Config struct {
	MerchantID     string `json:"merchant_id"`     // 商户号
	AccessKey      string `json:"access_key"`      // 接入密钥
	Mode           string `json:"run_mode"`        // TEST / PRODUCTION
	ContractNumber string `json:"contract_number"` // 合同号
	GatewayURL     string `json:"gateway_url"`     // 覆盖网关地址（留空按 run_mode 选择）
}

// ValidateConfig 校验网关配置完整性
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.MerchantID) == "" {
		return fmt.Errorf("%w: merchant_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return fmt.Errorf("%w: access_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.ContractNumber) == "" {
		return fmt.Errorf("%w: contract_number is required", ErrConfigInvalid)
	}
	return nil
}

// BaseURL 返回配置生效的网关地址
func (c *Config) BaseURL() string {
	if override := strings.TrimSpace(c.GatewayURL); override != "" {
		return strings.TrimRight(override, "/")
	}
	if strings.EqualFold(strings.TrimSpace(c.Mode), constants.PaylineModeProduction) {
		return ProductionBaseURL
	}
	return HomologationBaseURL
}

// Payment 支付信息（金额为最小货币单位）
type Payment struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"` // ISO 4217 数字码
	Action         int    `json:"action"`   // 101 = 授权+扣款
	Mode           string `json:"mode"`     // CPT / NX
	ContractNumber string `json:"contractNumber"`
}

// Recurring 分期计划（NX 模式）
type Recurring struct {
	FirstAmount  int64 `json:"firstAmount"`
	Amount       int64 `json:"amount"`
	BillingCycle int   `json:"billingCycle"`
	BillingLeft  int   `json:"billingLeft"`
}

// OrderInfo 订单信息
type OrderInfo struct {
	Ref      string `json:"ref"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Date     string `json:"date"` // 格式 dd/mm/yyyy HH:MM
}

// PrivateData 私有数据键值对（原样随回调返回）
type PrivateData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// WebPaymentRequest doWebPayment 请求
type WebPaymentRequest struct {
	ReturnURL       string        `json:"returnURL"`
	CancelURL       string        `json:"cancelURL"`
	NotificationURL string        `json:"notificationURL"`
	Payment         Payment       `json:"payment"`
	Recurring       *Recurring    `json:"recurring,omitempty"`
	Order           OrderInfo     `json:"order"`
	PrivateDataList []PrivateData `json:"privateDataList,omitempty"`
}

// Result 网关结果段
type Result struct {
	Code         string `json:"code"`
	ShortMessage string `json:"shortMessage"`
	LongMessage  string `json:"longMessage"`
}

// Success 结果码是否为支付成功
func (r Result) Success() bool {
	return r.Code == constants.PaylineResultCodeSuccess
}

// WebPaymentResponse doWebPayment 响应
type WebPaymentResponse struct {
	Result      Result `json:"result"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectURL"`
}

// Transaction 网关交易段
type Transaction struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// PaymentDetails getWebPaymentDetails 响应
type PaymentDetails struct {
	Result          Result        `json:"result"`
	Transaction     Transaction   `json:"transaction"`
	Payment         Payment       `json:"payment"`
	PrivateDataList []PrivateData `json:"privateDataList"`
}

// PrivateValue 取私有数据中指定 key 的值
func (d *PaymentDetails) PrivateValue(key string) (string, bool) {
	for _, item := range d.PrivateDataList {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

// Client Payline 网关客户端
type Client struct {
	cfg        *Config
	httpClient *http.Client
}

// NewClient 创建网关客户端
func NewClient(cfg *Config) (*Client, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// DoWebPayment 创建托管支付会话，返回收银台跳转地址和 token
func (c *Client) DoWebPayment(ctx context.Context, req *WebPaymentRequest) (*WebPaymentResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrRequestFailed)
	}
	if req.ReturnURL == "" || req.CancelURL == "" || req.NotificationURL == "" {
		return nil, fmt.Errorf("%w: callback urls are required", ErrRequestFailed)
	}
	var resp WebPaymentResponse
	if err := c.postJSON(ctx, doWebPaymentPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Result.Success() {
		if resp.RedirectURL == "" {
			return nil, fmt.Errorf("%w: missing redirectURL", ErrResponseInvalid)
		}
		if resp.Token == "" {
			return nil, fmt.Errorf("%w: missing token", ErrResponseInvalid)
		}
	}
	return &resp, nil
}

// GetWebPaymentDetails 查询支付会话结果
func (c *Client) GetWebPaymentDetails(ctx context.Context, token string) (*PaymentDetails, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrRequestFailed)
	}
	payload := map[string]string{"token": token}
	var details PaymentDetails
	if err := c.postJSON(ctx, getWebPaymentDetailsPath, payload, &details); err != nil {
		return nil, err
	}
	if details.Result.Code == "" {
		return nil, fmt.Errorf("%w: missing result code", ErrResponseInvalid)
	}
	return &details, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload failed", ErrRequestFailed)
	}
	endpoint := c.cfg.BaseURL() + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.cfg.MerchantID, c.cfg.AccessKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, httpResp.StatusCode)
	}
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return nil
}
