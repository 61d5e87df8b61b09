package main

import (
	"fmt"
	"time"

	"github.com/payline-checkout/internal/config"
	"github.com/payline-checkout/internal/constants"
	"github.com/payline-checkout/internal/logger"
	"github.com/payline-checkout/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示订单
	orders := []models.Order{
		{
			OrderRef:      fmt.Sprintf("DEMO-%d-1", time.Now().Unix()),
			CustomerEmail: "alice@example.com",
			Status:        constants.OrderStatusPendingPayment,
			Currency:      "EUR",
			TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(59.90)),
			ClientIP:      "127.0.0.1",
		},
		{
			OrderRef:      fmt.Sprintf("DEMO-%d-2", time.Now().Unix()),
			CustomerEmail: "bob@example.com",
			Status:        constants.OrderStatusPendingPayment,
			Currency:      "EUR",
			TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(300)),
			ClientIP:      "127.0.0.1",
		},
		{
			OrderRef:      fmt.Sprintf("DEMO-%d-3", time.Now().Unix()),
			CustomerEmail: "carol@example.com",
			Status:        constants.OrderStatusPendingPayment,
			Currency:      "USD",
			TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
			ClientIP:      "127.0.0.1",
		},
	}

	for i := range orders {
		if err := models.DB.Create(&orders[i]).Error; err != nil {
			stdLog.Fatalf("Failed to create order %s: %v", orders[i].OrderRef, err)
		}
		fmt.Printf("Created order %s (%s %s)\n", orders[i].OrderRef, orders[i].TotalAmount.String(), orders[i].Currency)
	}

	fmt.Println("Seed data created successfully!")
}
