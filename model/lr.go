package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Logistic 实现逻辑回归分类器，作为随机森林之外的轻量替代。
//
// 预测原理：
//  1. 线性加权求和: z = Bias + sum(Weights_i * x_i)
//  2. Sigmoid 变换: P = 1 / (1 + exp(-z))
type Logistic struct {
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

func parseLogistic(data []byte, path string) (*Logistic, error) {
	var m Logistic
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}
	return &m, nil
}

func (m *Logistic) Name() string { return "logistic" }

func (m *Logistic) InputDim() int { return len(m.Weights) }

func (m *Logistic) PredictProba(x []float64) (float64, error) {
	if len(x) != len(m.Weights) {
		return 0, shapeMismatch(m.Name(), len(x), len(m.Weights))
	}

	z := m.Bias
	for i, w := range m.Weights {
		z += w * x[i]
	}
	return 1 / (1 + math.Exp(-z)), nil
}
