// Package dsl 提供基于 CEL (Common Expression Language) 的条件表达式求值，
// 用于目标调权规则与策略过滤的声明式配置。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/nutrisolve/mealrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("features", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("user", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的条件表达式：编译一次，逐 Item 求值。
// 调权规则在 Node 构造期编译，请求期只做 Eval，避免逐条重复编译。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：features.calories < 300.0 && features.protein_g > 15.0
//   - 标签：label.filtered != null
//   - 用户：user.goal == "Muscle Gain"
//
// 注意：features 中不存在的 key 在 CEL 中访问会报错，
// 规则应只引用清单（manifest）保证存在的特征列。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译 DSL 表达式。空表达式返回恒真 Program。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return &Program{expr: expr}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式文本。
func (p *Program) String() string { return p.expr }

// Eval 对单个 Item 求值，返回布尔结果。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{})
	features := make(map[string]interface{})
	itemMap := map[string]interface{}{}

	if item != nil {
		for k, v := range item.Labels {
			labels[k] = v.Value
		}
		for k, v := range item.Features {
			features[k] = v
		}
		itemMap = map[string]interface{}{
			"id":       item.ID,
			"score":    item.Score,
			"name":     item.Name(),
			"category": item.Category(),
		}
	}

	user := map[string]interface{}{}
	if rctx != nil {
		p := rctx.Profile()
		user = map[string]interface{}{
			"goal":          p.Goal(),
			"weekly_budget": p.WeeklyBudget,
			"age":           p.Age,
			"gender":        p.Gender,
		}
	}

	return map[string]interface{}{
		"item":     itemMap,
		"features": features,
		"label":    labels,
		"user":     user,
	}
}
