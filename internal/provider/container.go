package provider

import (
	"github.com/payline-checkout/internal/cache"
	"github.com/payline-checkout/internal/config"
	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/models"
	"github.com/payline-checkout/internal/payment/payline"
	"github.com/payline-checkout/internal/queue"
	"github.com/payline-checkout/internal/repository"
	"github.com/payline-checkout/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	OrderRepo          repository.OrderRepository
	PaymentAttemptRepo repository.PaymentAttemptRepository

	// Services
	PaymentService *service.PaymentService
	EmailService   *service.EmailService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	db := models.DB
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentAttemptRepo = repository.NewPaymentAttemptRepository(db)

	gatewayClient, err := payline.NewClient(&payline.Config{
		MerchantID:     cfg.Payline.MerchantID,
		AccessKey:      cfg.Payline.AccessKey,
		Mode:           cfg.Payline.Mode,
		ContractNumber: cfg.Payline.ContractNumber,
		GatewayURL:     cfg.Payline.GatewayURL,
	})
	if err != nil {
		// 配置不完整时服务仍可启动，发起支付会走资格校验被拒绝
		logger.Warnw("provider_init_gateway_client_failed", "error", err)
	}

	c.EmailService = service.NewEmailService(&cfg.Email)
	c.PaymentService = service.NewPaymentService(&cfg.Payline, gatewayClient, c.OrderRepo, c.PaymentAttemptRepo, queueClient)

	return c
}
