package core

import "github.com/nutrisolve/mealrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：一条食物候选的特征、分数、元信息、标签。
// Features 存放数值特征（营养数值、成本、膳食 0/1 标志）；
// Meta 存放非数值属性（description、food_category 等）；
// Score 是模型输出的 fit 概率，经目标调权后用于排序决策；
// Labels 用于解释与策略驱动（过滤原因、调权来源、解释标签）。
type Item struct {
	ID       int64
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// Feature 读取数值特征，返回 (value, ok)。
// ok=false 表示该列在此 Item 上不存在（区别于值为 0）。
func (it *Item) Feature(name string) (float64, bool) {
	if it.Features == nil {
		return 0, false
	}
	v, ok := it.Features[name]
	return v, ok
}

// FeatureOr 读取数值特征，不存在时返回默认值。
func (it *Item) FeatureOr(name string, def float64) float64 {
	if v, ok := it.Feature(name); ok {
		return v
	}
	return def
}

// Name 返回食物展示名（meta["description"]），缺失时返回空串。
func (it *Item) Name() string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta["description"].(string); ok {
		return s
	}
	return ""
}

// Category 返回食物类别（meta["food_category"]），缺失时返回 "unknown"。
func (it *Item) Category() string {
	if it.Meta != nil {
		if s, ok := it.Meta["food_category"].(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Clone 复制 Item。目录是进程级只读数据，按请求复制后才进入 Pipeline 打分，
// 保证过滤/特征补全/调权不回写源目录。
func (it *Item) Clone() *Item {
	c := &Item{ID: it.ID, Score: it.Score}
	if it.Features != nil {
		c.Features = make(map[string]float64, len(it.Features))
		for k, v := range it.Features {
			c.Features[k] = v
		}
	}
	if it.Meta != nil {
		c.Meta = make(map[string]any, len(it.Meta))
		for k, v := range it.Meta {
			c.Meta[k] = v
		}
	}
	if it.Labels != nil {
		c.Labels = make(map[string]utils.Label, len(it.Labels))
		for k, v := range it.Labels {
			c.Labels[k] = v
		}
	}
	return c
}
