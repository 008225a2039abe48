// Package filter 实现约束过滤：膳食限制与预算是硬约束，
// 违反任意一条的候选被移除。列不存在视为"无信息"，对应过滤跳过。
package filter

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
)

// Filter 是过滤器的抽象接口，用于判断一个 Item 是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
