package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCanceled       = "canceled"
)

// 支付尝试状态常量
const (
	PaymentAttemptStatusInitiated = "initiated"
	PaymentAttemptStatusSuccess   = "success"
	PaymentAttemptStatusFailed    = "failed"
)

// Payline 运行模式常量
const (
	PaylineModeTest       = "TEST"
	PaylineModeProduction = "PRODUCTION"
)

// Payline 协议常量
const (
	// PaylineResultCodeSuccess 网关成功返回码
	PaylineResultCodeSuccess = "00000"
	// PaylineActionAuthCapture 授权 + 扣款（authorization+capture）
	PaylineActionAuthCapture = 101
	// PaylinePaymentModeOneShot 一次性支付
	PaylinePaymentModeOneShot = "CPT"
	// PaylinePaymentModeInstallment 三期分期支付
	PaylinePaymentModeInstallment = "NX"
	// PaylineBillingCycleMonthly 按月扣款周期码
	PaylineBillingCycleMonthly = 40
	// PaylineInstallmentCount 分期期数（固定 3 期）
	PaylineInstallmentCount = 3
	// PaylinePrivateDataKeyOrderID 回传订单关联所用的私有数据键
	PaylinePrivateDataKeyOrderID = "orderId"
)

// Payline 通知回调纯文本应答常量
const (
	PaylineNotifyBodyOK            = "OK"
	PaylineNotifyBodyNoToken       = "No token"
	PaylineNotifyBodyNoOrderRef    = "No order reference"
	PaylineNotifyBodyOrderNotFound = "Order not found"
	PaylineNotifyBodyOrderCanceled = "Order canceled"
)

// 回调 token 参数名常量
const (
	PaylineTokenParamNotification = "paylinetoken"
	PaylineTokenParamReturn       = "token"
)

// 队列与任务常量
const (
	QueueDefault               = "default"
	TaskOrderConfirmationEmail = "order:confirmation_email"
)
