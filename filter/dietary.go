package filter

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
)

// ColumnChecker 报告某列是否在候选目录的源数据中存在。
// catalog.Catalog 实现此接口。列不存在 ⇒ 对应约束无信息，过滤跳过。
type ColumnChecker interface {
	HasColumn(name string) bool
}

// restriction 把 onboarding 的限制写法映射到目录中的 0/1 标志列。
// 每个限制同时接受人类标签与 slug 两种写法，大小写不敏感。
type restriction struct {
	aliases []string
	column  string
}

var restrictions = []restriction{
	{aliases: []string{"Vegan", "vegan"}, column: "is_vegan"},
	{aliases: []string{"Gluten Free", "gluten-free"}, column: "is_glutenfree"},
	{aliases: []string{"Nut Allergy", "nut-free"}, column: "is_nutfree"},
}

// DietaryFilter 按用户膳食限制过滤：限制生效且对应标志列存在时，
// 标志未置位（!= 1）的候选被移除。
type DietaryFilter struct {
	// Schema 提供列存在性信息；为 nil 时退化为按条目自身是否携带该特征判断。
	Schema ColumnChecker
}

func (f *DietaryFilter) Name() string {
	return "filter.dietary"
}

func (f *DietaryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	profile := rctx.Profile()
	for _, r := range restrictions {
		if !profile.HasRestriction(r.aliases...) {
			continue
		}
		if !f.hasColumn(item, r.column) {
			continue // 无信息，跳过该限制
		}
		if item.FeatureOr(r.column, 0) != 1 {
			return true, nil
		}
	}
	return false, nil
}

func (f *DietaryFilter) hasColumn(item *core.Item, column string) bool {
	if f.Schema != nil {
		return f.Schema.HasColumn(column)
	}
	_, ok := item.Feature(column)
	return ok
}
