package filter

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
)

// ColumnCost 是目录中的单份成本列名。
const ColumnCost = "cost_per_serving"

// BudgetFilter 按预算过滤：单份成本超过 周预算÷21 的候选被移除。
// 成本列不存在时跳过（无信息不按超支处理）。
type BudgetFilter struct {
	// Schema 提供列存在性信息；为 nil 时退化为按条目自身是否携带成本特征判断。
	Schema ColumnChecker
}

func (f *BudgetFilter) Name() string {
	return "filter.budget"
}

func (f *BudgetFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if !f.hasColumn(item) {
		return false, nil
	}

	maxCost := rctx.Profile().MaxCostPerServing()
	return item.FeatureOr(ColumnCost, 0) > maxCost, nil
}

func (f *BudgetFilter) hasColumn(item *core.Item) bool {
	if f.Schema != nil {
		return f.Schema.HasColumn(ColumnCost)
	}
	_, ok := item.Feature(ColumnCost)
	return ok
}
