package config

import (
	"fmt"
	"strings"

	"github.com/payline-checkout/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Email    EmailConfig    `mapstructure:"email"`
	Security SecurityConfig `mapstructure:"security"`
	Payline  PaylineConfig  `mapstructure:"payline"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// EmailConfig 邮件服务配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	PayRateLimit PayRateLimitConfig `mapstructure:"pay_rate_limit"`
}

// PayRateLimitConfig 发起支付限流配置
type PayRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// PaylineConfig Payline 网关配置
type PaylineConfig struct {
	MerchantID     string `mapstructure:"merchant_id"`     // 商户号
	AccessKey      string `mapstructure:"access_key"`      // 接入密钥
	Mode           string `mapstructure:"run_mode"`        // TEST / PRODUCTION
	ContractNumber string `mapstructure:"contract_number"` // 合同号
	AllowedIPList  string `mapstructure:"allowed_ip_list"` // TEST 模式 IP 白名单（按行分隔）

	MinimumAmount   float64 `mapstructure:"minimum_amount"`    // 金额下限（0 表示不限）
	MaximumAmount   float64 `mapstructure:"maximum_amount"`    // 金额上限（0 表示不限）
	MinimumAmount3x float64 `mapstructure:"minimum_amount_3x"` // 分期金额下限
	MaximumAmount3x float64 `mapstructure:"maximum_amount_3x"` // 分期金额上限

	ActivatePayment3x               bool `mapstructure:"activate_payment_3x"`                     // 是否启用三期分期
	SendConfirmationOnlyIfPaid      bool `mapstructure:"send_confirmation_message_only_if_paid"`  // 仅支付成功时发送确认邮件
	// GatewayURL 覆盖网关地址（留空则按 run_mode 选择联调/生产环境）
	GatewayURL string `mapstructure:"gateway_url"`

	BaseURL        string `mapstructure:"base_url"`         // 本服务对外地址（拼接回调 URL）
	SuccessPageURL string `mapstructure:"success_page_url"` // 支付成功落地页
	FailurePageURL string `mapstructure:"failure_page_url"` // 支付失败落地页
	ErrorPageURL   string `mapstructure:"error_page_url"`   // 无法定位订单时的通用错误页
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "payline.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/payline.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "payline")
	viper.SetDefault("queue.enabled", true)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("queue.queues", map[string]int{
		"default": 10,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.host", "")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("email.username", "")
	viper.SetDefault("email.password", "")
	viper.SetDefault("email.from", "")
	viper.SetDefault("email.from_name", "")
	viper.SetDefault("email.use_tls", true)
	viper.SetDefault("security.pay_rate_limit.window_seconds", 60)
	viper.SetDefault("security.pay_rate_limit.max_attempts", 10)
	viper.SetDefault("payline.merchant_id", "")
	viper.SetDefault("payline.access_key", "")
	viper.SetDefault("payline.run_mode", "TEST")
	viper.SetDefault("payline.contract_number", "")
	viper.SetDefault("payline.allowed_ip_list", "")
	viper.SetDefault("payline.minimum_amount", 0)
	viper.SetDefault("payline.maximum_amount", 0)
	viper.SetDefault("payline.minimum_amount_3x", 0)
	viper.SetDefault("payline.maximum_amount_3x", 0)
	viper.SetDefault("payline.activate_payment_3x", false)
	viper.SetDefault("payline.send_confirmation_message_only_if_paid", true)
	viper.SetDefault("payline.gateway_url", "")
	viper.SetDefault("payline.base_url", "http://127.0.0.1:8080")
	viper.SetDefault("payline.success_page_url", "/order/payment/success")
	viper.SetDefault("payline.failure_page_url", "/order/payment/failure")
	viper.SetDefault("payline.error_page_url", "/error")

	// 环境变量支持（payline.run_mode -> PAYLINE_RUN_MODE）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config unmarshal failed: %w", err))
	}

	return &cfg
}
