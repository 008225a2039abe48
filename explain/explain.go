// Package explain 从候选的营养特征生成人类可读的推荐解释：
// 置信等级、推荐理由与膳食标签。判定阈值与文案沿用产品约定，
// 顺序固定，保证同一输入的解释逐字节可复现。
package explain

import (
	"fmt"

	"github.com/nutrisolve/mealrec/core"
)

// 置信等级（由 fit 分数按固定阈值分桶）。
const (
	ConfidenceHigh     = "high"     // score > 0.8
	ConfidenceMedium   = "medium"   // score > 0.6
	ConfidenceModerate = "moderate" // 其余
)

// Confidence 返回分数对应的置信等级。
func Confidence(score float64) string {
	switch {
	case score > 0.8:
		return ConfidenceHigh
	case score > 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceModerate
	}
}

// Reasons 按固定顺序检测推荐理由，每个成立的条件追加一条格式化文案。
// 顺序：高蛋白、高纤维、低卡路里、低糖、省钱；可能零条、数条或全部成立。
func Reasons(item *core.Item) []string {
	var reasons []string

	if p := item.FeatureOr("protein_g", 0); p > 15 {
		reasons = append(reasons, fmt.Sprintf("High protein (%.1fg)", p))
	}
	if f := item.FeatureOr("fiber_g", 0); f > 5 {
		reasons = append(reasons, fmt.Sprintf("High fiber (%.1fg)", f))
	}
	if c := item.FeatureOr("calories", 0); c < 200 {
		reasons = append(reasons, fmt.Sprintf("Low calorie (%.0f kcal)", c))
	}
	if s := item.FeatureOr("sugars_g", 0); s < 5 {
		reasons = append(reasons, fmt.Sprintf("Low sugar (%.1fg)", s))
	}
	if c := item.FeatureOr("cost_per_serving", 0); c < 2 {
		reasons = append(reasons, fmt.Sprintf("Budget-friendly ($%.2f)", c))
	}

	return reasons
}

// DietaryTags 按固定顺序（vegan、gluten-free、nut-free）输出已置位的膳食标签。
func DietaryTags(item *core.Item) []string {
	var tags []string

	if item.FeatureOr("is_vegan", 0) == 1 {
		tags = append(tags, "Vegan")
	}
	if item.FeatureOr("is_glutenfree", 0) == 1 {
		tags = append(tags, "Gluten-free")
	}
	if item.FeatureOr("is_nutfree", 0) == 1 {
		tags = append(tags, "Nut-free")
	}

	return tags
}

// Nutrition 是响应中的营养概要快照。
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugars   float64 `json:"sugars"`
}

// Summarize 提取候选的营养概要。
func Summarize(item *core.Item) Nutrition {
	return Nutrition{
		Calories: item.FeatureOr("calories", 0),
		Protein:  item.FeatureOr("protein_g", 0),
		Carbs:    item.FeatureOr("carbs_g", 0),
		Fat:      item.FeatureOr("fat_g", 0),
		Fiber:    item.FeatureOr("fiber_g", 0),
		Sugars:   item.FeatureOr("sugars_g", 0),
	}
}
