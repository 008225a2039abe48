// Package rank 实现推理打分：列变换 → 非负平移 → 特征选择 → 分类器概率。
package rank

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/feature"
	"github.com/nutrisolve/mealrec/model"
	"github.com/nutrisolve/mealrec/pipeline"
	"github.com/nutrisolve/mealrec/pkg/utils"
)

// Epsilon 是非负平移的最小正偏置。
// 训练期的特征选择评分函数只接受非负输入，推理期对变换结果做同样的平移
// 以保持形状一致；平移是整批统一的偏置，不改变行间相对关系。
const Epsilon = 1e-9

// InferenceNode 对候选批量打分。
// - 写入 labels：rank_model
// - 更新 item.Score 为正类概率
//
// 这里不排序：分数还要经过目标调权，排序由 rerank.GoalNode 在调权后统一完成，
// 保证同分 tie-break 始终是过滤后目录的先后顺序。
//
// 平移量取当前批次变换矩阵的最小值（批相对），与离线管线行为保持一致；
// 见 DESIGN.md 对该行为的讨论。
type InferenceNode struct {
	Transform  *feature.ColumnTransform
	Selector   *feature.KBestSelector
	Classifier model.Classifier
}

func (n *InferenceNode) Name() string        { return "rank.inference" }
func (n *InferenceNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *InferenceNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Classifier == nil || len(items) == 0 {
		return items, nil
	}

	// 1. 列变换（逐行独立）
	rows := make([][]float64, len(items))
	for i, it := range items {
		rows[i] = n.Transform.Apply(it)
	}
	if len(rows[0]) == 0 {
		return nil, core.NewDomainError(core.ModulePipeline, core.ErrorCodeShapeMismatch,
			"rank: transform produced no columns")
	}

	// 2. 非负平移：整批减最小值加 epsilon
	min := rows[0][0]
	for _, row := range rows {
		for _, v := range row {
			if v < min {
				min = v
			}
		}
	}
	shift := -min + Epsilon
	for _, row := range rows {
		for j := range row {
			row[j] += shift
		}
	}

	// 3. 特征选择 + 4. 分类器概率
	for i, it := range items {
		selected, err := n.Selector.Apply(rows[i])
		if err != nil {
			return nil, err
		}
		p, err := n.Classifier.PredictProba(selected)
		if err != nil {
			return nil, err
		}
		it.Score = p
		it.PutLabel("rank_model", utils.Label{Value: n.Classifier.Name(), Source: "rank"})
	}

	return items, nil
}
