// Package rerank 实现打分后的调整：目标调权与 Top-N 截断。
package rerank

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/pipeline"
	"github.com/nutrisolve/mealrec/pkg/dsl"
	"github.com/nutrisolve/mealrec/pkg/utils"
)

// GoalRule 是一条目标调权规则：用户主目标匹配 Goal 且候选满足 When 条件时，
// 分数乘以 Boost。When 为 CEL 表达式，构造期编译。
type GoalRule struct {
	Goal  string
	When  string
	Boost float64

	prg *dsl.Program
}

// GoalNode 按用户主目标对分数做乘性调权，随后双侧钳制到 [0,1]，
// 最后按调整后分数降序稳定排序（同分保持输入顺序，即过滤后目录的先后顺序）。
//
// 每次请求只有一个主目标生效，不同目标的规则不叠加；
// 同一目标配置多条规则时按声明顺序依次应用。
type GoalNode struct {
	Rules []GoalRule
}

// DefaultGoalRules 返回内置的调权规则表。
//
//	目标          条件                                    乘数
//	Weight Loss   calories < 300 且 protein_g > 15        ×1.2
//	Muscle Gain   protein_g > 20                           ×1.3
//	Heart Health  sodium_mg < 500 且 fiber_g > 5           ×1.2
//	其他/缺省     —                                        ×1.0
func DefaultGoalRules() []GoalRule {
	return []GoalRule{
		{
			Goal:  core.GoalWeightLoss,
			When:  "features.calories < 300.0 && features.protein_g > 15.0",
			Boost: 1.2,
		},
		{
			Goal:  core.GoalMuscleGain,
			When:  "features.protein_g > 20.0",
			Boost: 1.3,
		},
		{
			Goal:  core.GoalHeartHealth,
			When:  "features.sodium_mg < 500.0 && features.fiber_g > 5.0",
			Boost: 1.2,
		},
	}
}

// NewGoalNode 编译规则并构造调权 Node。规则表达式非法时报错（配置错误）。
func NewGoalNode(rules []GoalRule) (*GoalNode, error) {
	if rules == nil {
		rules = DefaultGoalRules()
	}
	for i := range rules {
		prg, err := dsl.Compile(rules[i].When)
		if err != nil {
			return nil, fmt.Errorf("rerank: rule %d (%s): %w", i, rules[i].Goal, err)
		}
		rules[i].prg = prg
	}
	return &GoalNode{Rules: rules}, nil
}

func (n *GoalNode) Name() string        { return "rerank.goal" }
func (n *GoalNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *GoalNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	goal := rctx.Profile().Goal()

	for _, it := range items {
		if it == nil {
			continue
		}

		for i := range n.Rules {
			rule := &n.Rules[i]
			if rule.Goal != goal {
				continue
			}
			match, err := rule.prg.Eval(it, rctx)
			if err != nil {
				// 规则求值失败按不匹配处理，不中断整批打分
				continue
			}
			if !match {
				continue
			}
			it.Score *= rule.Boost
			it.PutLabel("goal_boost", utils.Label{
				Value:  goal + " x" + strconv.FormatFloat(rule.Boost, 'g', -1, 64),
				Source: "rerank",
			})
		}

		// 双侧钳制：调权只会抬分，但负向调整也必须被挡在 [0,1] 内
		if it.Score < 0 {
			it.Score = 0
		}
		if it.Score > 1 {
			it.Score = 1
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}
