package model

import (
	"encoding/json"
	"fmt"

	"github.com/nutrisolve/mealrec/core"
)

// RandomForest 实现随机森林分类器推理。
//
// 预测原理：
//  1. 每棵树从根节点按 x[feature] <= threshold 走左、否则走右，直至叶节点
//  2. 叶节点的类分布 [n_neg, n_pos] 给出该树的正类比例
//  3. 森林输出 = 各树正类比例的算术平均
//
// 树结构使用扁平数组表示（children_left/children_right/feature/threshold/value），
// 与离线导出格式一一对应；children_left = -1 标记叶节点。
type RandomForest struct {
	NFeatures int    `json:"n_features"`
	Trees     []Tree `json:"trees"`
}

// Tree 是单棵决策树的扁平数组表示。
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"` // 每个节点的类分布 [n_neg, n_pos]
}

func parseRandomForest(data []byte, path string) (*RandomForest, error) {
	var m RandomForest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}
	if len(m.Trees) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: %s contains no trees", path))
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(i); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (t *Tree) validate(idx int) error {
	n := len(t.ChildrenLeft)
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeShapeMismatch,
			fmt.Sprintf("model: tree %d has inconsistent node arrays", idx))
	}
	if n == 0 {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: tree %d is empty", idx))
	}
	return nil
}

func (m *RandomForest) Name() string { return "random_forest" }

func (m *RandomForest) InputDim() int { return m.NFeatures }

// PredictProba 返回正类概率（各树叶节点正类比例的均值）。
func (m *RandomForest) PredictProba(x []float64) (float64, error) {
	if len(x) != m.NFeatures {
		return 0, shapeMismatch(m.Name(), len(x), m.NFeatures)
	}

	sum := 0.0
	for i := range m.Trees {
		sum += m.Trees[i].proba(x)
	}
	return sum / float64(len(m.Trees)), nil
}

// proba 走一棵树，返回叶节点的正类比例。
func (t *Tree) proba(x []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] >= 0 {
		f := t.Feature[node]
		if f >= 0 && f < len(x) && x[f] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}

	dist := t.Value[node]
	if len(dist) < 2 {
		return 0
	}
	total := dist[0] + dist[1]
	if total <= 0 {
		return 0
	}
	return dist[1] / total
}
