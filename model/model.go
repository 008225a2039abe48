// Package model 实现本地分类器推理。分类器是离线训练的不透明工件，
// 这里只按数值契约加载并调用：输入选择后的特征向量，输出正类概率。
package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nutrisolve/mealrec/core"
)

// Classifier 是打分阶段的最小抽象：输入定宽特征向量，
// 输出"适合该用户"（正类）的概率，范围 (0, 1)。
type Classifier interface {
	Name() string

	// InputDim 返回期望的输入宽度，用于装载期一致性检查
	InputDim() int

	// PredictProba 返回正类概率。宽度不符返回 SHAPE_MISMATCH。
	PredictProba(x []float64) (float64, error)
}

// classifierHeader 用于探测工件中的分类器类型。
type classifierHeader struct {
	Type string `json:"type"`
}

// LoadClassifier 从 JSON 文件加载分类器，按 type 字段分发到具体实现。
func LoadClassifier(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var header classifierHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}

	switch header.Type {
	case "random_forest", "":
		return parseRandomForest(data, path)
	case "logistic":
		return parseLogistic(data, path)
	default:
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotSupported,
			fmt.Sprintf("model: unknown classifier type %q in %s", header.Type, path))
	}
}

func shapeMismatch(name string, got, want int) error {
	return core.NewDomainError(core.ModuleModel, core.ErrorCodeShapeMismatch,
		fmt.Sprintf("model %s: input has %d features, expected %d", name, got, want))
}
