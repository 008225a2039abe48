package explain

import (
	"context"
	"strings"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/pipeline"
	"github.com/nutrisolve/mealrec/pkg/utils"
)

// Node 是解释 Node：为截断后的每个候选写入置信/理由/膳食标签 Label。
// Label 只服务解释与观测；响应 DTO 由引擎直接调用包内纯函数构建。
type Node struct{}

func (n *Node) Name() string {
	return "postprocess.explain"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *Node) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil {
			continue
		}

		it.PutLabel("confidence", utils.Label{Value: Confidence(it.Score), Source: "explain"})

		if reasons := Reasons(it); len(reasons) > 0 {
			it.PutLabel("reasons", utils.Label{Value: strings.Join(reasons, "|"), Source: "explain"})
		}
		if tags := DietaryTags(it); len(tags) > 0 {
			it.PutLabel("dietary", utils.Label{Value: strings.Join(tags, "|"), Source: "explain"})
		}
	}
	return items, nil
}
