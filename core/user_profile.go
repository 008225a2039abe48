package core

import "strings"

// 主目标取值。来自 onboarding 的自由文本，仅以下三个触发调权，
// 其余目标按 GoalGeneralHealth 处理（不调权）。
const (
	GoalWeightLoss    = "Weight Loss"
	GoalMuscleGain    = "Muscle Gain"
	GoalHeartHealth   = "Heart Health"
	GoalGeneralHealth = "General Health"
)

// DefaultWeeklyBudget 是未填预算时的默认周预算（货币单位）。
const DefaultWeeklyBudget = 100

// MealsPerWeek 用于把周预算折算为单份餐食的成本上限（3 餐 × 7 天）。
const MealsPerWeek = 21

// UserProfile 是用户画像：每次请求从入站 payload 新建，请求期内只读，不落盘。
//
// 维度与作用：
//   - 静态属性（Age/Gender）：目前仅透传，预留给后续个性化特征
//   - PrimaryGoal：驱动 ReRank 阶段的目标调权
//   - DietaryRestrictions：驱动 Filter 阶段的硬约束
//   - WeeklyBudget：折算为单份成本上限后参与过滤
type UserProfile struct {
	Age    int
	Gender string

	// PrimaryGoal 是用户主目标，空串视为 General Health。
	PrimaryGoal string

	// DietaryRestrictions 是自由文本集合，匹配时大小写不敏感，
	// 同时接受人类标签与 slug 两种写法（"Vegan"/"vegan"、"Gluten Free"/"gluten-free"）。
	DietaryRestrictions []string

	// WeeklyBudget 是周预算（货币单位），<=0 时按 DefaultWeeklyBudget 处理。
	WeeklyBudget float64
}

// NewUserProfile 创建带默认值的用户画像。
func NewUserProfile() *UserProfile {
	return &UserProfile{WeeklyBudget: DefaultWeeklyBudget}
}

// Goal 返回归一化后的主目标，空串归一为 General Health。
func (p *UserProfile) Goal() string {
	if p == nil || p.PrimaryGoal == "" {
		return GoalGeneralHealth
	}
	return p.PrimaryGoal
}

// MaxCostPerServing 把周预算折算为单份餐食的成本上限（预算 ÷ 21）。
func (p *UserProfile) MaxCostPerServing() float64 {
	budget := DefaultWeeklyBudget * 1.0
	if p != nil && p.WeeklyBudget > 0 {
		budget = p.WeeklyBudget
	}
	return budget / MealsPerWeek
}

// HasRestriction 检查限制集合中是否包含某个限制。
// aliases 是该限制的所有可接受写法（标签与 slug），匹配大小写不敏感。
func (p *UserProfile) HasRestriction(aliases ...string) bool {
	if p == nil || len(p.DietaryRestrictions) == 0 {
		return false
	}
	for _, r := range p.DietaryRestrictions {
		for _, a := range aliases {
			if strings.EqualFold(strings.TrimSpace(r), a) {
				return true
			}
		}
	}
	return false
}
