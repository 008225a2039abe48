package dsl

import (
	"testing"

	"github.com/nutrisolve/mealrec/core"
)

func TestProgram_Eval(t *testing.T) {
	item := core.NewItem(1)
	item.Features["calories"] = 250.0
	item.Features["protein_g"] = 22.0
	item.Score = 0.7

	rctx := &core.RecommendContext{
		User: &core.UserProfile{PrimaryGoal: core.GoalMuscleGain, WeeklyBudget: 120},
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{
			name: "feature comparison true",
			expr: "features.protein_g > 20.0",
			want: true,
		},
		{
			name: "feature comparison false",
			expr: "features.calories < 200.0",
			want: false,
		},
		{
			name: "conjunction",
			expr: "features.calories < 300.0 && features.protein_g > 15.0",
			want: true,
		},
		{
			name: "user goal",
			expr: `user.goal == "Muscle Gain"`,
			want: true,
		},
		{
			name: "item score",
			expr: "item.score > 0.5",
			want: true,
		},
		{
			name: "empty expression is always true",
			expr: "",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			got, err := prg.Eval(item, rctx)
			if err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	if _, err := Compile("features.calories <"); err == nil {
		t.Error("expected compile error for malformed expression")
	}
}

func TestProgram_Eval_NonBoolean(t *testing.T) {
	prg, err := Compile("features.calories + 1.0")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	item := core.NewItem(1)
	item.Features["calories"] = 100.0
	if _, err := prg.Eval(item, nil); err == nil {
		t.Error("expected error for non-boolean expression result")
	}
}
