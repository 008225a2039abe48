// Package feature 实现特征侧的离线契约：特征清单（manifest）、
// 列变换（ColumnTransform）、特征选择（KBestSelector）以及请求期的特征补全。
package feature

import (
	"encoding/json"
	"fmt"
	"os"
)

// 两个派生特征列。缺失时不是补 0，而是按公式现算（见 MaterializeNode）。
const (
	ColumnNutrientDensity  = "nutrient_density"
	ColumnSugarToCarbRatio = "sugar_to_carb_ratio"
)

// Manifest 是离线管线写出的特征名清单，描述了变换与选择器期望的列及其顺序。
// 它是 Scoring Artifact Bundle 的一致性锚点：
// 变换输出列名必须等于 TransformedFeatures，选择器宽度必须等于其长度。
type Manifest struct {
	// NumericalFeatures 数值特征列（含成本与两个派生列），顺序即变换输入顺序
	NumericalFeatures []string `json:"numerical_features"`

	// CategoricalFeatures 类别特征列（目前只有 food_category）
	CategoricalFeatures []string `json:"categorical_features"`

	// BinaryFeatures 0/1 膳食标志列
	BinaryFeatures []string `json:"binary_features"`

	// TransformedFeatures 变换后的全量列名（数值 + one-hot + 透传）
	TransformedFeatures []string `json:"transformed_features"`

	// SelectedFeatures 特征选择后保留的列名（可解释性用途）
	SelectedFeatures []string `json:"selected_features"`

	// ModelVersion 模型版本号，回写到响应
	ModelVersion string `json:"model_version"`
}

// LoadManifest 从 JSON 文件加载特征清单。
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	return &m, nil
}

// Version 返回模型版本，缺省 "1.0"。
func (m *Manifest) Version() string {
	if m == nil || m.ModelVersion == "" {
		return "1.0"
	}
	return m.ModelVersion
}
