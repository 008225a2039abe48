package engine

import (
	"encoding/json"

	"github.com/nutrisolve/mealrec/explain"
)

// NoEligibleMessage 是零候选时返回给用户的提示文案。
const NoEligibleMessage = "No foods match your dietary restrictions and budget. Try relaxing some constraints."

// Recommendation 是出站结果中的单条推荐。
type Recommendation struct {
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	FitScore    float64           `json:"fit_score"`
	Confidence  string            `json:"confidence"`
	Nutrition   explain.Nutrition `json:"nutrition"`
	Cost        float64           `json:"cost"`
	Reasons     []string          `json:"reasons"`
	DietaryInfo []string          `json:"dietary_info"`
}

// Result 是一次推荐的完整出站结果。
//
// 有两种序列化形态：
//   - 零候选：{"recommendations": [], "message": ...}
//   - 正常：{"recommendations": [...], "query", "total_eligible",
//     "model_version", "user_goal"}
//
// Message 非空即走退化形态，由 MarshalJSON 兑现。
type Result struct {
	Recommendations []Recommendation
	Query           string
	TotalEligible   int
	ModelVersion    string
	UserGoal        string
	Message         string
}

type emptyResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message"`
}

type fullResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Query           string           `json:"query"`
	TotalEligible   int              `json:"total_eligible"`
	ModelVersion    string           `json:"model_version"`
	UserGoal        string           `json:"user_goal"`
}

// MarshalJSON 按 Message 是否为空选择出站形态。
// Recommendations 恒序列化为数组而非 null。
func (r *Result) MarshalJSON() ([]byte, error) {
	recs := r.Recommendations
	if recs == nil {
		recs = []Recommendation{}
	}
	if r.Message != "" {
		return json.Marshal(emptyResult{Recommendations: recs, Message: r.Message})
	}
	return json.Marshal(fullResult{
		Recommendations: recs,
		Query:           r.Query,
		TotalEligible:   r.TotalEligible,
		ModelVersion:    r.ModelVersion,
		UserGoal:        r.UserGoal,
	})
}

// ErrorBody 是进程失败时写往 stderr 的错误对象。
type ErrorBody struct {
	Error string `json:"error"`
}
