package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/feast"
	"github.com/nutrisolve/mealrec/pkg/conv"
)

// Enricher 在目录加载后、引擎开始服务前，从 Feast 在线存储批量补齐目录缺失的特征列。
// 这是启动期的一次性操作：目录一旦补齐即只读，Enricher 不参与请求路径。
type Enricher struct {
	Client feast.Client

	// EntityKey 是 Feast 中的实体名（如 "fdc_id"）
	EntityKey string

	// Features 是要拉取的特征引用（如 "food_stats:protein_g"）。
	// 写入 Item.Features 时取冒号后的短名。
	Features []string

	// Project 项目名（可选）
	Project string
}

// Enrich 为目录中每个条目补齐特征。已有的特征值不覆盖（目录优先）。
func (e *Enricher) Enrich(ctx context.Context, cat *Catalog) error {
	if e.Client == nil || len(e.Features) == 0 || cat.Len() == 0 {
		return nil
	}

	entityRows := make([]map[string]interface{}, 0, cat.Len())
	for _, it := range cat.Items {
		entityRows = append(entityRows, map[string]interface{}{e.EntityKey: it.ID})
	}

	resp, err := e.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   e.Features,
		EntityRows: entityRows,
		Project:    e.Project,
	})
	if err != nil {
		return fmt.Errorf("catalog: enrich from feast: %w", err)
	}
	if len(resp.FeatureVectors) != cat.Len() {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: feast returned %d vectors for %d items",
				len(resp.FeatureVectors), cat.Len()))
	}

	for i, it := range cat.Items {
		for ref, raw := range resp.FeatureVectors[i].Values {
			name := shortName(ref)
			if _, exists := it.Features[name]; exists {
				continue
			}
			if f, ok := conv.ToFloat64(raw); ok {
				it.Features[name] = f
			}
		}
	}

	// 拉取过的列从此视为存在
	for _, ref := range e.Features {
		cat.columns[shortName(ref)] = true
	}
	return nil
}

// shortName 取特征引用冒号后的短名（"food_stats:protein_g" → "protein_g"）。
func shortName(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
