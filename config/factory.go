package config

import (
	"fmt"

	"github.com/nutrisolve/mealrec/explain"
	"github.com/nutrisolve/mealrec/feature"
	"github.com/nutrisolve/mealrec/filter"
	"github.com/nutrisolve/mealrec/pipeline"
	"github.com/nutrisolve/mealrec/pkg/conv"
	"github.com/nutrisolve/mealrec/rerank"
)

// DefaultFactory 返回一个包含所有内置 Node 的默认工厂。
func DefaultFactory() *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// 注册 Recall Nodes
	factory.Register("recall.catalog", buildCatalogNode)

	// 注册 Filter Nodes
	factory.Register("filter", buildFilterNode)

	// 注册 Feature Nodes
	factory.Register("feature.materialize", buildMaterializeNode)

	// 注册 Rank Nodes
	factory.Register("rank.inference", buildInferenceNode)

	// 注册 ReRank Nodes
	factory.Register("rerank.goal", buildGoalNode)
	factory.Register("rerank.topn", buildTopNNode)

	// 注册 PostProcess Nodes
	factory.Register("postprocess.explain", buildExplainNode)

	return factory
}

func buildCatalogNode(config map[string]interface{}) (pipeline.Node, error) {
	// 目录是启动期加载的进程内对象，无法从纯配置构建，
	// 由 engine.New 直接装配
	return nil, fmt.Errorf("catalog node requires a loaded catalog")
}

func buildFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := config["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		name, _ := fc.(string)
		switch name {
		case "dietary":
			filters = append(filters, &filter.DietaryFilter{})
		case "budget":
			filters = append(filters, &filter.BudgetFilter{})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", name)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func buildMaterializeNode(config map[string]interface{}) (pipeline.Node, error) {
	manifest := &feature.Manifest{
		NumericalFeatures:   conv.SliceAnyToString(config["numerical_features"]),
		CategoricalFeatures: conv.SliceAnyToString(config["categorical_features"]),
		BinaryFeatures:      conv.SliceAnyToString(config["binary_features"]),
	}
	if len(manifest.NumericalFeatures) == 0 &&
		len(manifest.CategoricalFeatures) == 0 &&
		len(manifest.BinaryFeatures) == 0 {
		return nil, fmt.Errorf("materialize node requires at least one feature list")
	}
	return &feature.MaterializeNode{Manifest: manifest}, nil
}

func buildInferenceNode(config map[string]interface{}) (pipeline.Node, error) {
	// 推理依赖加载完成的工件（变换/选择器/分类器），无法从纯配置构建，
	// 由 engine.New 直接装配
	return nil, fmt.Errorf("inference node requires loaded artifacts")
}

func buildGoalNode(config map[string]interface{}) (pipeline.Node, error) {
	rulesConfig, ok := config["rules"].([]interface{})
	if !ok {
		// 未配置规则时使用内置规则表
		return rerank.NewGoalNode(nil)
	}

	rules := make([]rerank.GoalRule, 0, len(rulesConfig))
	for _, rc := range rulesConfig {
		ruleMap, ok := rc.(map[string]interface{})
		if !ok {
			continue
		}
		rules = append(rules, rerank.GoalRule{
			Goal:  conv.ConfigGet[string](ruleMap, "goal", ""),
			When:  conv.ConfigGet[string](ruleMap, "when", ""),
			Boost: conv.ConfigGetFloat64(ruleMap, "boost", 1.0),
		})
	}
	return rerank.NewGoalNode(rules)
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt(config, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("topn node requires n > 0")
	}
	return &rerank.TopNNode{N: n}, nil
}

func buildExplainNode(config map[string]interface{}) (pipeline.Node, error) {
	return &explain.Node{}, nil
}
