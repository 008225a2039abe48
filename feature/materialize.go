package feature

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/pipeline"
)

// MaterializeNode 保证每个候选都带有清单要求的全部特征列。
// 缺失策略：
//   - 数值列补 0，但两个派生列按公式现算：
//     nutrient_density = (protein_g + fiber_g) / (calories + 1)
//     sugar_to_carb_ratio = sugars_g / (carbs_g + 1)
//   - 类别列补 "unknown"
//   - 0/1 标志列补 0
//
// 空候选集直接透传（过滤清空目录的退化场景也要能走完 Pipeline）。
type MaterializeNode struct {
	Manifest *Manifest
}

func (n *MaterializeNode) Name() string {
	return "feature.materialize"
}

func (n *MaterializeNode) Kind() pipeline.Kind {
	return pipeline.KindFeature
}

func (n *MaterializeNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Manifest == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		n.materialize(it)
	}
	return items, nil
}

func (n *MaterializeNode) materialize(it *core.Item) {
	if it.Features == nil {
		it.Features = make(map[string]float64)
	}

	for _, col := range n.Manifest.NumericalFeatures {
		if _, ok := it.Features[col]; ok {
			continue
		}
		switch col {
		case ColumnNutrientDensity:
			it.Features[col] = (it.FeatureOr("protein_g", 0) + it.FeatureOr("fiber_g", 0)) /
				(it.FeatureOr("calories", 0) + 1)
		case ColumnSugarToCarbRatio:
			it.Features[col] = it.FeatureOr("sugars_g", 0) / (it.FeatureOr("carbs_g", 0) + 1)
		default:
			it.Features[col] = 0
		}
	}

	for _, col := range n.Manifest.CategoricalFeatures {
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		if s, ok := it.Meta[col].(string); !ok || s == "" {
			it.Meta[col] = "unknown"
		}
	}

	for _, col := range n.Manifest.BinaryFeatures {
		if _, ok := it.Features[col]; !ok {
			it.Features[col] = 0
		}
	}
}
