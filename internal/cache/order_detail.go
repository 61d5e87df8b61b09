package cache

import (
	"context"
	"fmt"
)

func orderDetailKey(orderID uint) string {
	return fmt.Sprintf("order:detail:%d", orderID)
}

// GetOrderDetail 获取订单详情缓存
func GetOrderDetail(ctx context.Context, orderID uint, dest interface{}) (bool, error) {
	if orderID == 0 {
		return false, nil
	}
	return GetJSON(ctx, orderDetailKey(orderID), dest)
}

// SetOrderDetail 写入订单详情缓存
func SetOrderDetail(ctx context.Context, orderID uint, value interface{}) error {
	if orderID == 0 {
		return nil
	}
	return SetJSON(ctx, orderDetailKey(orderID), value, orderDetailCacheTTL)
}

// DelOrderDetail 订单状态变化后删除详情缓存
func DelOrderDetail(ctx context.Context, orderID uint) error {
	if orderID == 0 {
		return nil
	}
	return Del(ctx, orderDetailKey(orderID))
}
