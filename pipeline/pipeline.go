package pipeline

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
)

// Pipeline 是核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 引擎用两条 Pipeline 组装整个请求：候选+过滤 与 特征+打分+重排+解释。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
