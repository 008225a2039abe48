// Package engine 把各阶段 Node 组装为完整的推荐引擎，并定义请求/响应边界。
//
// 一次请求经过两条 Pipeline：
//   - 候选阶段：目录候选 → 约束过滤。过滤后为空直接短路返回"无符合项"结果，
//     同时得到 total_eligible。
//   - 打分阶段：特征补全 → 推理打分 → 目标调权 → Top-K 截断 → 解释。
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrisolve/mealrec/artifact"
	"github.com/nutrisolve/mealrec/catalog"
	"github.com/nutrisolve/mealrec/explain"
	"github.com/nutrisolve/mealrec/feature"
	"github.com/nutrisolve/mealrec/filter"
	"github.com/nutrisolve/mealrec/pipeline"
	"github.com/nutrisolve/mealrec/rank"
	"github.com/nutrisolve/mealrec/rerank"
)

// Engine 是装配完成的推荐引擎。构造后只读，可并发使用。
type Engine struct {
	bundle  *artifact.Bundle
	catalog *catalog.Catalog

	candidates *pipeline.Pipeline
	scoring    []pipeline.Node

	goalRules   []rerank.GoalRule
	defaultTopK int
	log         zerolog.Logger
}

// Option 配置 Engine 的可选项。
type Option func(*Engine)

// WithGoalRules 覆盖内置的目标调权规则。
func WithGoalRules(rules []rerank.GoalRule) Option {
	return func(e *Engine) { e.goalRules = rules }
}

// WithDefaultTopK 覆盖请求未指定 top_k 时的返回条数。
func WithDefaultTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.defaultTopK = k
		}
	}
}

// WithLogger 注入结构化日志器，默认丢弃。
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New 用加载完成的工件与目录装配引擎。
func New(bundle *artifact.Bundle, cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		bundle:      bundle,
		catalog:     cat,
		defaultTopK: DefaultTopK,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	goalNode, err := rerank.NewGoalNode(e.goalRules)
	if err != nil {
		return nil, err
	}

	e.candidates = &pipeline.Pipeline{Nodes: []pipeline.Node{
		&catalog.Node{Catalog: cat},
		&filter.FilterNode{Filters: []filter.Filter{
			&filter.DietaryFilter{Schema: cat},
			&filter.BudgetFilter{Schema: cat},
		}},
	}}

	e.scoring = []pipeline.Node{
		&feature.MaterializeNode{Manifest: bundle.Manifest},
		&rank.InferenceNode{
			Transform:  bundle.Transform,
			Selector:   bundle.Selector,
			Classifier: bundle.Classifier,
		},
		goalNode,
	}
	return e, nil
}

// Recommend 执行一次完整推荐。业务上的"无符合项"不是错误，
// 返回带 Message 的退化 Result；错误仅来自配置/数据形状问题。
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		req = &Request{}
	}
	rctx := req.Context()

	k := rctx.TopK
	if k <= 0 {
		k = e.defaultTopK
	}

	start := time.Now()

	eligible, err := e.candidates.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		e.log.Info().Str("goal", rctx.Profile().Goal()).Msg("no eligible candidates")
		return &Result{
			Recommendations: []Recommendation{},
			Message:         NoEligibleMessage,
		}, nil
	}
	total := len(eligible)

	nodes := make([]pipeline.Node, 0, len(e.scoring)+2)
	nodes = append(nodes, e.scoring...)
	nodes = append(nodes, &rerank.TopNNode{N: k}, &explain.Node{})

	top, err := (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, eligible)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(top))
	for _, it := range top {
		recs = append(recs, Recommendation{
			Name:        it.Name(),
			Category:    it.Category(),
			FitScore:    it.Score,
			Confidence:  explain.Confidence(it.Score),
			Nutrition:   explain.Summarize(it),
			Cost:        it.FeatureOr(filter.ColumnCost, 0),
			Reasons:     explain.Reasons(it),
			DietaryInfo: explain.DietaryTags(it),
		})
	}

	e.log.Info().
		Int("eligible", total).
		Int("returned", len(recs)).
		Str("goal", rctx.Profile().Goal()).
		Dur("elapsed", time.Since(start)).
		Msg("recommend")

	return &Result{
		Recommendations: recs,
		Query:           rctx.Query,
		TotalEligible:   total,
		ModelVersion:    e.bundle.ModelVersion(),
		UserGoal:        rctx.Profile().Goal(),
	}, nil
}
