package pipeline

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 候选阶段：从目录生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除违反膳食/预算约束的候选
	KindFeature     Kind = "feature"     // 特征阶段：补全模型要求的特征列
	KindRank        Kind = "rank"        // 排序阶段：推理打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：目标调权/截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：生成解释与膳食标签
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便过滤截断、打分重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
