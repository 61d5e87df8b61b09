package public

import "github.com/payline-checkout/internal/provider"

// Handler 公开接口处理器入口
// 说明：包含商户前端调用的 API 与 Payline 网关回调。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
