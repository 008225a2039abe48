package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/nutrisolve/mealrec/core"
)

// 快照在 Store 中的布局：整张目录是一个 Hash，
// field 为食物 ID，value 为 snapshotItem JSON；
// 另有保留 field 记录列集合，读回时还原 schema。
const schemaField = "__columns__"

// snapshotItem 是目录条目在 Store 中的序列化形态。
type snapshotItem struct {
	ID          int64              `json:"id"`
	Description string             `json:"description,omitempty"`
	Category    string             `json:"food_category,omitempty"`
	Features    map[string]float64 `json:"features"`
}

// Snapshot 把目录写入 KeyValueStore（离线管线的交付路径之一）。
func Snapshot(ctx context.Context, kv core.KeyValueStore, key string, cat *Catalog) error {
	cols, err := json.Marshal(cat.Columns())
	if err != nil {
		return fmt.Errorf("catalog: marshal columns: %w", err)
	}
	if err := kv.HSet(ctx, key, schemaField, cols); err != nil {
		return fmt.Errorf("catalog: snapshot columns: %w", err)
	}

	for _, it := range cat.Items {
		if it == nil {
			continue
		}
		si := snapshotItem{
			ID:       it.ID,
			Features: it.Features,
		}
		if s, ok := it.Meta[ColumnDescription].(string); ok {
			si.Description = s
		}
		if s, ok := it.Meta[ColumnCategory].(string); ok {
			si.Category = s
		}
		data, err := json.Marshal(si)
		if err != nil {
			return fmt.Errorf("catalog: marshal item %d: %w", it.ID, err)
		}
		if err := kv.HSet(ctx, key, strconv.FormatInt(it.ID, 10), data); err != nil {
			return fmt.Errorf("catalog: snapshot item %d: %w", it.ID, err)
		}
	}
	return nil
}

// LoadFromStore 从 KeyValueStore 读回目录快照。
// Hash 为空视为目录缺失（MISSING_CATALOG）。
func LoadFromStore(ctx context.Context, kv core.KeyValueStore, key string) (*Catalog, error) {
	all, err := kv.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("catalog: load snapshot %s: %w", key, err)
	}
	if len(all) == 0 {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeMissingCatalog,
			fmt.Sprintf("catalog: snapshot %q not found in store %s", key, kv.Name()))
	}

	var columns []string
	if raw, ok := all[schemaField]; ok {
		if err := json.Unmarshal(raw, &columns); err != nil {
			return nil, fmt.Errorf("catalog: decode snapshot columns: %w", err)
		}
		delete(all, schemaField)
	}

	items := make([]*core.Item, 0, len(all))
	for field, raw := range all {
		var si snapshotItem
		if err := json.Unmarshal(raw, &si); err != nil {
			return nil, fmt.Errorf("catalog: decode snapshot item %s: %w", field, err)
		}
		it := core.NewItem(si.ID)
		if si.Features != nil {
			it.Features = si.Features
		}
		if si.Description != "" {
			it.Meta[ColumnDescription] = si.Description
		}
		if si.Category != "" {
			it.Meta[ColumnCategory] = si.Category
		}
		items = append(items, it)
	}

	// Hash 读回无序，按 ID 恢复稳定顺序
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return New(items, columns, "store:"+key), nil
}
