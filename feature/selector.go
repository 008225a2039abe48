package feature

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nutrisolve/mealrec/core"
)

// KBestSelector 复刻离线管线拟合的特征选择器：
// 对变换输出按训练期确定的支持掩码（support mask）取子集。
// 掩码在训练时由 chi2 评分选出，推理期只做投影，不再评分。
type KBestSelector struct {
	// InputDim 期望的输入宽度（变换输出的列数）
	InputDim int `json:"input_dim"`

	// Support 支持掩码，长度必须等于 InputDim；true 表示该列被保留
	Support []bool `json:"support"`
}

// LoadSelector 从 JSON 文件加载特征选择器。
func LoadSelector(path string) (*KBestSelector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s KBestSelector
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("selector: parse %s: %w", path, err)
	}
	if len(s.Support) != s.InputDim {
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeShapeMismatch,
			fmt.Sprintf("selector: support mask has %d entries, expected %d", len(s.Support), s.InputDim))
	}
	return &s, nil
}

// OutputDim 返回选择后的列数。
func (s *KBestSelector) OutputDim() int {
	k := 0
	for _, keep := range s.Support {
		if keep {
			k++
		}
	}
	return k
}

// Apply 对单行向量应用支持掩码。宽度不符是工件不兼容，按致命错误返回。
func (s *KBestSelector) Apply(x []float64) ([]float64, error) {
	if len(x) != s.InputDim {
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeShapeMismatch,
			fmt.Sprintf("selector: input has %d columns, expected %d", len(x), s.InputDim))
	}
	out := make([]float64, 0, s.OutputDim())
	for i, keep := range s.Support {
		if keep {
			out = append(out, x[i])
		}
	}
	return out, nil
}
