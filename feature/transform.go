package feature

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nutrisolve/mealrec/core"
)

// ColumnTransform 复刻离线管线拟合的列变换：
//   - 数值列：z-score 标准化 z = (x - mean) / scale
//   - 类别列：one-hot 编码，drop_first 时首类别不出列，
//     未知类别全零（handle_unknown=ignore 语义）
//   - 0/1 标志列：透传
//
// 输出顺序固定为 数值、one-hot、透传，与训练期完全一致。
type ColumnTransform struct {
	Numerical struct {
		Names []string  `json:"names"`
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"numerical"`

	Categorical struct {
		Name       string   `json:"name"`
		Categories []string `json:"categories"`
		DropFirst  bool     `json:"drop_first"`
	} `json:"categorical"`

	Binary []string `json:"binary"`
}

// LoadTransform 从 JSON 文件加载列变换。
func LoadTransform(path string) (*ColumnTransform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t ColumnTransform
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("transform: parse %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *ColumnTransform) validate() error {
	if len(t.Numerical.Mean) != len(t.Numerical.Names) || len(t.Numerical.Scale) != len(t.Numerical.Names) {
		return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeShapeMismatch,
			fmt.Sprintf("transform: %d numerical names but %d means / %d scales",
				len(t.Numerical.Names), len(t.Numerical.Mean), len(t.Numerical.Scale)))
	}
	return nil
}

// OutputDim 返回变换输出的列数。
func (t *ColumnTransform) OutputDim() int {
	return len(t.Numerical.Names) + len(t.oneHotCategories()) + len(t.Binary)
}

// OutputNames 返回变换输出的列名，顺序与 Apply 的输出一致。
// one-hot 列名遵循 <列名>_<类别> 约定。
func (t *ColumnTransform) OutputNames() []string {
	names := make([]string, 0, t.OutputDim())
	names = append(names, t.Numerical.Names...)
	for _, cat := range t.oneHotCategories() {
		names = append(names, t.Categorical.Name+"_"+cat)
	}
	names = append(names, t.Binary...)
	return names
}

// Apply 把单个候选的特征按训练期契约变换为数值向量。
// 调用前提：MaterializeNode 已保证所有列存在。
func (t *ColumnTransform) Apply(item *core.Item) []float64 {
	out := make([]float64, 0, t.OutputDim())

	for i, name := range t.Numerical.Names {
		x := item.FeatureOr(name, 0)
		mean := t.Numerical.Mean[i]
		scale := t.Numerical.Scale[i]
		if scale > 0 {
			out = append(out, (x-mean)/scale)
		} else {
			out = append(out, x-mean)
		}
	}

	val := categoryOf(item, t.Categorical.Name)
	for _, cat := range t.oneHotCategories() {
		if val == cat {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}

	for _, name := range t.Binary {
		out = append(out, item.FeatureOr(name, 0))
	}
	return out
}

// oneHotCategories 返回实际出列的类别（drop_first 时去掉首类别）。
func (t *ColumnTransform) oneHotCategories() []string {
	cats := t.Categorical.Categories
	if t.DropFirst() && len(cats) > 0 {
		return cats[1:]
	}
	return cats
}

// DropFirst 返回是否丢弃首类别。
func (t *ColumnTransform) DropFirst() bool { return t.Categorical.DropFirst }

func categoryOf(item *core.Item, column string) string {
	if item.Meta != nil {
		if s, ok := item.Meta[column].(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}
