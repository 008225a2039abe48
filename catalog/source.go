package catalog

import (
	"context"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/pipeline"
	"github.com/nutrisolve/mealrec/pkg/utils"
)

// Node 是目录候选 Node：把整张目录的副本作为候选集注入 Pipeline。
// 引擎的候选阶段以它开头，后接约束过滤。
type Node struct {
	Catalog *Catalog
}

func (n *Node) Name() string        { return "recall.catalog" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Node) Process(
	_ context.Context,
	_ *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeMissingCatalog,
			"catalog: no catalog attached to candidate node")
	}

	items := n.Catalog.Candidates()
	for _, it := range items {
		it.PutLabel("candidate_source", utils.Label{Value: n.Catalog.Source(), Source: "catalog"})
	}
	return items, nil
}
