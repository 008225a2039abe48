package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nutrisolve/mealrec/artifact"
	"github.com/nutrisolve/mealrec/catalog"
	"github.com/nutrisolve/mealrec/core"
)

// 测试工件：分类器权重全零，所有候选的基础分恒为 0.5，
// 排序差异只能来自目标调权，便于精确断言。
const (
	testManifest = `{
		"numerical_features": ["calories", "protein_g", "fiber_g", "sugars_g", "carbs_g", "fat_g", "sodium_mg", "cost_per_serving"],
		"categorical_features": ["food_category"],
		"binary_features": ["is_vegan", "is_glutenfree", "is_nutfree"],
		"transformed_features": ["calories", "protein_g", "food_category_Legumes", "is_vegan"],
		"model_version": "1.2"
	}`
	testTransform = `{
		"numerical": {"names": ["calories", "protein_g"], "mean": [200, 10], "scale": [100, 5]},
		"categorical": {"name": "food_category", "categories": ["Fruits", "Legumes"], "drop_first": true},
		"binary": ["is_vegan"]
	}`
	testSelector = `{"input_dim": 4, "support": [false, true, false, true]}`
	testModel    = `{"type": "logistic", "bias": 0, "weights": [0, 0]}`

	testCSV = `fdc_id,description,food_category,calories,protein_g,fiber_g,sugars_g,carbs_g,fat_g,sodium_mg,cost_per_serving,is_vegan,is_glutenfree,is_nutfree
101,Lentil soup,Legumes,180,12,6,2,20,2,300,1.20,1,1,1
102,Grilled chicken,Poultry,220,31,0,0,0,5,400,2.80,0,1,1
103,Tofu stir fry,Legumes,250,22,3,4,12,9,500,2.00,1,0,1
104,Vegan cake,Desserts,400,4,1,30,50,18,200,6.00,1,0,0
`
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		artifact.FileManifest:   testManifest,
		artifact.FileTransform:  testTransform,
		artifact.FileSelector:   testSelector,
		artifact.FileClassifier: testModel,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	csvPath := filepath.Join(dir, "foods.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	bundle, err := artifact.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("artifact.Load() error = %v", err)
	}
	cat, err := catalog.LoadCSV(csvPath)
	if err != nil {
		t.Fatalf("catalog.LoadCSV() error = %v", err)
	}

	eng, err := New(bundle, cat)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return eng
}

func TestEngine_Recommend_ConstraintsFirst(t *testing.T) {
	eng := newTestEngine(t)

	req := &Request{
		UserProfile: &ProfilePayload{
			PrimaryGoal:         core.GoalGeneralHealth,
			DietaryRestrictions: []string{"Vegan"},
			WeeklyBudget:        63, // 3 per serving
		},
		Query: "cheap vegan dinner",
	}

	res, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if res.TotalEligible != 2 {
		t.Errorf("TotalEligible = %d, want 2 (chicken and cake excluded)", res.TotalEligible)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(res.Recommendations))
	}

	// 无调权时全部 0.5，顺序即过滤后目录顺序
	if res.Recommendations[0].Name != "Lentil soup" || res.Recommendations[1].Name != "Tofu stir fry" {
		t.Errorf("order = [%s, %s], want catalog order",
			res.Recommendations[0].Name, res.Recommendations[1].Name)
	}

	first := res.Recommendations[0]
	if first.FitScore != 0.5 {
		t.Errorf("FitScore = %v, want 0.5", first.FitScore)
	}
	if first.Confidence != "moderate" {
		t.Errorf("Confidence = %q, want moderate", first.Confidence)
	}
	if first.Category != "Legumes" {
		t.Errorf("Category = %q, want Legumes", first.Category)
	}
	if first.Cost != 1.2 {
		t.Errorf("Cost = %v, want 1.2", first.Cost)
	}
	if first.Nutrition.Protein != 12 || first.Nutrition.Calories != 180 {
		t.Errorf("Nutrition = %+v", first.Nutrition)
	}
	if len(first.DietaryInfo) != 3 {
		t.Errorf("DietaryInfo = %v, want all three tags", first.DietaryInfo)
	}

	if res.Query != "cheap vegan dinner" {
		t.Errorf("Query = %q, want echo of request query", res.Query)
	}
	if res.ModelVersion != "1.2" {
		t.Errorf("ModelVersion = %q, want 1.2", res.ModelVersion)
	}
	if res.UserGoal != core.GoalGeneralHealth {
		t.Errorf("UserGoal = %q, want %q", res.UserGoal, core.GoalGeneralHealth)
	}
}

func TestEngine_Recommend_GoalReweighting(t *testing.T) {
	eng := newTestEngine(t)

	req := &Request{
		UserProfile: &ProfilePayload{PrimaryGoal: core.GoalMuscleGain},
		TopK:        1,
	}

	res, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// 默认预算 100（上限 4.76）排除蛋糕；鸡肉与豆腐 protein > 20 吃到 x1.3，
	// 同分并列保持目录顺序，鸡肉第一
	if res.TotalEligible != 3 {
		t.Errorf("TotalEligible = %d, want 3", res.TotalEligible)
	}
	if len(res.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 (top_k)", len(res.Recommendations))
	}

	top := res.Recommendations[0]
	if top.Name != "Grilled chicken" {
		t.Errorf("top = %q, want Grilled chicken", top.Name)
	}
	// fit_score 原样透出，不做十进制舍入
	if top.FitScore != 0.5*1.3 {
		t.Errorf("FitScore = %v, want exactly %v", top.FitScore, 0.5*1.3)
	}
	if top.Confidence != "medium" {
		t.Errorf("Confidence = %q, want medium", top.Confidence)
	}
	if res.UserGoal != core.GoalMuscleGain {
		t.Errorf("UserGoal = %q, want %q", res.UserGoal, core.GoalMuscleGain)
	}
}

func TestEngine_Recommend_EmptyEligibleSet(t *testing.T) {
	eng := newTestEngine(t)

	req := &Request{
		UserProfile: &ProfilePayload{
			DietaryRestrictions: []string{"Vegan"},
			WeeklyBudget:        10, // 上限 0.47，全部超支
		},
	}

	res, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if res.Message != NoEligibleMessage {
		t.Errorf("Message = %q, want %q", res.Message, NoEligibleMessage)
	}
	if len(res.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want 0", len(res.Recommendations))
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"recommendations":[]`) {
		t.Errorf("empty result must serialize recommendations as []: %s", out)
	}
	if strings.Contains(out, "total_eligible") {
		t.Errorf("empty result must not carry the full shape: %s", out)
	}
}

func TestEngine_Recommend_TopKLargerThanEligible(t *testing.T) {
	eng := newTestEngine(t)

	req := &Request{
		UserProfile: &ProfilePayload{PrimaryGoal: core.GoalMuscleGain},
		TopK:        50,
	}

	res, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Recommendations) != 3 {
		t.Errorf("got %d recommendations, want all 3 eligible", len(res.Recommendations))
	}
	if res.TotalEligible != 3 {
		t.Errorf("TotalEligible = %d, want 3", res.TotalEligible)
	}
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	eng := newTestEngine(t)

	req := &Request{
		UserProfile: &ProfilePayload{
			PrimaryGoal:         core.GoalWeightLoss,
			DietaryRestrictions: []string{"gluten-free"},
		},
		Query: "light lunch",
		TopK:  5,
	}

	first, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := eng.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("same request produced different output:\n%s\n%s", a, b)
	}
}

func TestDecodeRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		payload := `{
			"userProfile": {"age": 31, "primaryGoal": "Weight Loss", "dietaryRestrictions": ["Vegan"], "weeklyBudget": 80},
			"query": "dinner",
			"top_k": 3
		}`
		req, err := DecodeRequest(strings.NewReader(payload))
		if err != nil {
			t.Fatalf("DecodeRequest() error = %v", err)
		}

		rctx := req.Context()
		p := rctx.Profile()
		if p.PrimaryGoal != core.GoalWeightLoss || p.WeeklyBudget != 80 || p.Age != 31 {
			t.Errorf("profile = %+v", p)
		}
		if rctx.Query != "dinner" || rctx.TopK != 3 {
			t.Errorf("query/topk = %q/%d", rctx.Query, rctx.TopK)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		if _, err := DecodeRequest(strings.NewReader("{not json")); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("missing profile gets defaults", func(t *testing.T) {
		req, err := DecodeRequest(strings.NewReader(`{"query": "anything"}`))
		if err != nil {
			t.Fatalf("DecodeRequest() error = %v", err)
		}
		p := req.Context().Profile()
		if p.WeeklyBudget != core.DefaultWeeklyBudget {
			t.Errorf("WeeklyBudget = %v, want default", p.WeeklyBudget)
		}
		if p.Goal() != core.GoalGeneralHealth {
			t.Errorf("Goal() = %q, want General Health", p.Goal())
		}
	})
}

func TestResult_MarshalJSON_FullShape(t *testing.T) {
	res := &Result{
		Recommendations: []Recommendation{},
		Query:           "q",
		TotalEligible:   7,
		ModelVersion:    "1.0",
		UserGoal:        core.GoalGeneralHealth,
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{`"recommendations"`, `"query"`, `"total_eligible"`, `"model_version"`, `"user_goal"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("full shape missing %s: %s", key, data)
		}
	}
	if strings.Contains(string(data), `"message"`) {
		t.Errorf("full shape must not carry message: %s", data)
	}
}
