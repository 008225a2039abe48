package core

import (
	"math"
	"testing"
)

func TestUserProfile_MaxCostPerServing(t *testing.T) {
	tests := []struct {
		name    string
		profile *UserProfile
		want    float64
	}{
		{
			name:    "explicit budget",
			profile: &UserProfile{WeeklyBudget: 210},
			want:    10,
		},
		{
			name:    "zero budget falls back to default",
			profile: &UserProfile{WeeklyBudget: 0},
			want:    float64(DefaultWeeklyBudget) / MealsPerWeek,
		},
		{
			name:    "negative budget falls back to default",
			profile: &UserProfile{WeeklyBudget: -5},
			want:    float64(DefaultWeeklyBudget) / MealsPerWeek,
		},
		{
			name:    "nil profile falls back to default",
			profile: nil,
			want:    float64(DefaultWeeklyBudget) / MealsPerWeek,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.MaxCostPerServing()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MaxCostPerServing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserProfile_HasRestriction(t *testing.T) {
	tests := []struct {
		name         string
		restrictions []string
		aliases      []string
		want         bool
	}{
		{
			name:         "human label",
			restrictions: []string{"Vegan"},
			aliases:      []string{"Vegan", "vegan"},
			want:         true,
		},
		{
			name:         "slug form",
			restrictions: []string{"gluten-free"},
			aliases:      []string{"Gluten Free", "gluten-free"},
			want:         true,
		},
		{
			name:         "case insensitive",
			restrictions: []string{"VEGAN"},
			aliases:      []string{"Vegan", "vegan"},
			want:         true,
		},
		{
			name:         "surrounding whitespace",
			restrictions: []string{"  Nut Allergy "},
			aliases:      []string{"Nut Allergy", "nut-free"},
			want:         true,
		},
		{
			name:         "not present",
			restrictions: []string{"Vegan"},
			aliases:      []string{"Gluten Free", "gluten-free"},
			want:         false,
		},
		{
			name:         "empty restrictions",
			restrictions: nil,
			aliases:      []string{"Vegan", "vegan"},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UserProfile{DietaryRestrictions: tt.restrictions}
			if got := p.HasRestriction(tt.aliases...); got != tt.want {
				t.Errorf("HasRestriction(%v) = %v, want %v", tt.aliases, got, tt.want)
			}
		})
	}
}

func TestUserProfile_Goal(t *testing.T) {
	if got := (&UserProfile{}).Goal(); got != GoalGeneralHealth {
		t.Errorf("empty goal = %q, want %q", got, GoalGeneralHealth)
	}
	if got := (&UserProfile{PrimaryGoal: GoalMuscleGain}).Goal(); got != GoalMuscleGain {
		t.Errorf("goal = %q, want %q", got, GoalMuscleGain)
	}
	var nilProfile *UserProfile
	if got := nilProfile.Goal(); got != GoalGeneralHealth {
		t.Errorf("nil profile goal = %q, want %q", got, GoalGeneralHealth)
	}
}

func TestItem_Clone(t *testing.T) {
	it := NewItem(7)
	it.Features["calories"] = 150
	it.Meta["description"] = "Lentil soup"

	c := it.Clone()
	c.Features["calories"] = 999
	c.Meta["description"] = "changed"
	c.Score = 0.5

	if it.Features["calories"] != 150 {
		t.Errorf("clone mutated source features: %v", it.Features["calories"])
	}
	if it.Meta["description"] != "Lentil soup" {
		t.Errorf("clone mutated source meta: %v", it.Meta["description"])
	}
	if it.Score != 0 {
		t.Errorf("clone mutated source score: %v", it.Score)
	}
}

func TestItem_Feature(t *testing.T) {
	it := NewItem(1)
	it.Features["is_vegan"] = 0

	if v, ok := it.Feature("is_vegan"); !ok || v != 0 {
		t.Errorf("Feature(is_vegan) = (%v, %v), want (0, true)", v, ok)
	}
	if _, ok := it.Feature("cost_per_serving"); ok {
		t.Error("Feature(cost_per_serving) should report absent")
	}
	if got := it.FeatureOr("cost_per_serving", 3.5); got != 3.5 {
		t.Errorf("FeatureOr default = %v, want 3.5", got)
	}
}
