package rerank

import (
	"context"
	"math"
	"testing"

	"github.com/nutrisolve/mealrec/core"
)

func scoredItem(id int64, score float64, features map[string]float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	for k, v := range features {
		it.Features[k] = v
	}
	return it
}

func goalCtx(goal string) *core.RecommendContext {
	return &core.RecommendContext{User: &core.UserProfile{PrimaryGoal: goal}}
}

func TestGoalNode_Boosts(t *testing.T) {
	tests := []struct {
		name     string
		goal     string
		score    float64
		features map[string]float64
		want     float64
	}{
		{
			name:     "weight loss boost applies",
			goal:     core.GoalWeightLoss,
			score:    0.5,
			features: map[string]float64{"calories": 250, "protein_g": 16},
			want:     0.6,
		},
		{
			name:     "weight loss needs both conditions",
			goal:     core.GoalWeightLoss,
			score:    0.5,
			features: map[string]float64{"calories": 250, "protein_g": 14},
			want:     0.5,
		},
		{
			name:     "muscle gain boost applies",
			goal:     core.GoalMuscleGain,
			score:    0.5,
			features: map[string]float64{"calories": 400, "protein_g": 25},
			want:     0.65,
		},
		{
			name:     "heart health boost applies",
			goal:     core.GoalHeartHealth,
			score:    0.5,
			features: map[string]float64{"sodium_mg": 300, "fiber_g": 6},
			want:     0.6,
		},
		{
			name:     "general health never boosts",
			goal:     core.GoalGeneralHealth,
			score:    0.5,
			features: map[string]float64{"calories": 100, "protein_g": 30, "sodium_mg": 100, "fiber_g": 10},
			want:     0.5,
		},
		{
			name:     "rules for another goal do not apply",
			goal:     core.GoalMuscleGain,
			score:    0.5,
			features: map[string]float64{"calories": 250, "protein_g": 16},
			want:     0.5,
		},
		{
			name:     "boosted score is clamped to 1",
			goal:     core.GoalMuscleGain,
			score:    0.95,
			features: map[string]float64{"protein_g": 25},
			want:     1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewGoalNode(nil)
			if err != nil {
				t.Fatalf("NewGoalNode() error = %v", err)
			}

			// 表达式引用的列必须全部存在
			it := scoredItem(1, tt.score, map[string]float64{
				"calories": 0, "protein_g": 0, "sodium_mg": 9999, "fiber_g": 0,
			})
			for k, v := range tt.features {
				it.Features[k] = v
			}

			out, err := node.Process(context.Background(), goalCtx(tt.goal), []*core.Item{it})
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if got := out[0].Score; math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoalNode_SortsAfterAdjustment(t *testing.T) {
	node, err := NewGoalNode(nil)
	if err != nil {
		t.Fatalf("NewGoalNode() error = %v", err)
	}

	base := map[string]float64{"calories": 500, "protein_g": 0, "sodium_mg": 9999, "fiber_g": 0}
	high := map[string]float64{"calories": 500, "protein_g": 25, "sodium_mg": 9999, "fiber_g": 0}

	// 调权前 item1 领先；item2 吃到 x1.3 后反超
	items := []*core.Item{
		scoredItem(1, 0.60, base),
		scoredItem(2, 0.55, high),
	}

	out, err := node.Process(context.Background(), goalCtx(core.GoalMuscleGain), items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].ID != 2 || out[1].ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", out[0].ID, out[1].ID)
	}

	if lbl, ok := out[0].Labels["goal_boost"]; !ok || lbl.Source != "rerank" {
		t.Errorf("boosted item label = %+v, want goal_boost from rerank", lbl)
	}
	if _, ok := out[1].Labels["goal_boost"]; ok {
		t.Error("unboosted item should not carry goal_boost label")
	}
}

func TestGoalNode_TiesKeepInputOrder(t *testing.T) {
	node, err := NewGoalNode(nil)
	if err != nil {
		t.Fatalf("NewGoalNode() error = %v", err)
	}

	features := map[string]float64{"calories": 500, "protein_g": 0, "sodium_mg": 9999, "fiber_g": 0}
	items := []*core.Item{
		scoredItem(3, 0.5, features),
		scoredItem(1, 0.5, features),
		scoredItem(2, 0.5, features),
	}

	out, err := node.Process(context.Background(), goalCtx(core.GoalGeneralHealth), items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for i, want := range []int64{3, 1, 2} {
		if out[i].ID != want {
			t.Errorf("out[%d].ID = %d, want %d (stable order)", i, out[i].ID, want)
		}
	}
}

func TestGoalNode_CustomRules(t *testing.T) {
	rules := []GoalRule{
		{Goal: "Keto", When: "features.carbs_g < 10.0", Boost: 1.5},
	}
	node, err := NewGoalNode(rules)
	if err != nil {
		t.Fatalf("NewGoalNode() error = %v", err)
	}

	it := scoredItem(1, 0.4, map[string]float64{"carbs_g": 5})
	out, err := node.Process(context.Background(), goalCtx("Keto"), []*core.Item{it})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := out[0].Score; math.Abs(got-0.6) > 1e-12 {
		t.Errorf("score = %v, want 0.6", got)
	}
}

func TestNewGoalNode_BadExpression(t *testing.T) {
	if _, err := NewGoalNode([]GoalRule{{Goal: "X", When: "features.calories <", Boost: 2}}); err == nil {
		t.Error("expected error for malformed rule expression")
	}
}

func TestTopNNode_Process(t *testing.T) {
	items := []*core.Item{
		scoredItem(1, 0.9, nil),
		scoredItem(2, 0.8, nil),
		scoredItem(3, 0.7, nil),
	}

	tests := []struct {
		name    string
		n       int
		wantIDs []int64
	}{
		{name: "truncates to n", n: 2, wantIDs: []int64{1, 2}},
		{name: "n larger than batch returns all", n: 10, wantIDs: []int64{1, 2, 3}},
		{name: "n equals batch returns all", n: 3, wantIDs: []int64{1, 2, 3}},
		{name: "non-positive n disables truncation", n: 0, wantIDs: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != len(tt.wantIDs) {
				t.Fatalf("Process() = %d items, want %d", len(out), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if out[i].ID != want {
					t.Errorf("out[%d].ID = %d, want %d", i, out[i].ID, want)
				}
			}
		})
	}
}
