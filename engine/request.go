package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nutrisolve/mealrec/core"
)

// Request 是请求边界的入站 payload：一次进程恰好读取一条。
type Request struct {
	UserProfile *ProfilePayload `json:"userProfile"`
	Query       string          `json:"query"`
	TopK        int             `json:"top_k"`
}

// ProfilePayload 是入站的用户画像。所有字段可缺省；
// 缺省语义（预算默认 100、目标默认 General Health）在 core.UserProfile 中兑现。
type ProfilePayload struct {
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	PrimaryGoal         string   `json:"primaryGoal"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	WeeklyBudget        float64  `json:"weeklyBudget"`
}

// DecodeRequest 从 r 读取一条 JSON 请求。
// 非法 JSON 返回描述性错误，调用方据此写错误对象并以非零退出。
func DecodeRequest(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	return &req, nil
}

// Context 把入站请求转为 Pipeline 透传的 RecommendContext。
func (r *Request) Context() *core.RecommendContext {
	profile := core.NewUserProfile()
	if r.UserProfile != nil {
		profile.Age = r.UserProfile.Age
		profile.Gender = r.UserProfile.Gender
		profile.PrimaryGoal = r.UserProfile.PrimaryGoal
		profile.DietaryRestrictions = r.UserProfile.DietaryRestrictions
		if r.UserProfile.WeeklyBudget > 0 {
			profile.WeeklyBudget = r.UserProfile.WeeklyBudget
		}
	}

	return &core.RecommendContext{
		User:  profile,
		Query: r.Query,
		TopK:  r.TopK,
	}
}
