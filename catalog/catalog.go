// Package catalog 负责食物目录的加载与快照。
// 目录由离线特征管线产出（CSV 或 Store 快照），进程启动时一次性加载，
// 此后只读；每次请求在目录的副本上过滤与打分。
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/nutrisolve/mealrec/core"
)

// 目录中的非数值列。其余列按数值特征解析进 Item.Features。
const (
	ColumnID          = "fdc_id"
	ColumnDescription = "description"
	ColumnCategory    = "food_category"
)

// Catalog 是进程级只读的食物目录。
// columns 记录源数据中实际存在的列：过滤器据此区分"列不存在"（跳过过滤）
// 与"值为 0"（正常参与过滤），消除 schema 容忍带来的歧义。
type Catalog struct {
	Items   []*core.Item
	columns map[string]bool
	source  string
}

// New 从条目与列集合构造目录（测试与 Store 加载路径使用）。
func New(items []*core.Item, columns []string, source string) *Catalog {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &Catalog{Items: items, columns: set, source: source}
}

// Len 返回目录条数。
func (c *Catalog) Len() int { return len(c.Items) }

// Source 返回目录来源描述（文件路径 / store key），用于日志。
func (c *Catalog) Source() string { return c.source }

// HasColumn 返回某列是否在源数据中存在。
func (c *Catalog) HasColumn(name string) bool { return c.columns[name] }

// Columns 返回列名集合的副本。
func (c *Catalog) Columns() []string {
	out := make([]string, 0, len(c.columns))
	for k := range c.columns {
		out = append(out, k)
	}
	return out
}

// Candidates 返回目录所有条目的副本，作为一次请求的候选集。
// 副本保证 Pipeline 各阶段不会修改源目录。
func (c *Catalog) Candidates() []*core.Item {
	out := make([]*core.Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it == nil {
			continue
		}
		out = append(out, it.Clone())
	}
	return out
}

// Load 加载目录：优先特征完备的加工目录（processed），
// 缺失时回退到原始目录（raw），两者都不存在时返回 MISSING_CATALOG（致命）。
func Load(processedPath, rawPath string) (*Catalog, error) {
	if processedPath != "" {
		cat, err := LoadCSV(processedPath)
		if err == nil {
			return cat, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if rawPath != "" {
		cat, err := LoadCSV(rawPath)
		if err == nil {
			return cat, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeMissingCatalog,
		fmt.Sprintf("catalog: food database not found (tried %q, %q)", processedPath, rawPath))
}

// LoadCSV 从 CSV 文件加载目录。首行为表头；
// fdc_id/description/food_category 之外的列全部按数值特征解析。
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read header of %s: %w", path, err)
	}

	columns := make(map[string]bool, len(header))
	for _, h := range header {
		columns[h] = true
	}

	var items []*core.Item
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s row %d: %w", path, row+1, err)
		}

		item := core.NewItem(int64(row + 1))
		for i, h := range header {
			if i >= len(record) {
				break
			}
			val := record[i]
			switch h {
			case ColumnID:
				if id, err := strconv.ParseInt(val, 10, 64); err == nil {
					item.ID = id
				}
			case ColumnDescription, ColumnCategory:
				item.Meta[h] = val
			default:
				if val == "" {
					continue // 空单元格视为缺失，由 Feature 阶段补默认值
				}
				if fv, err := strconv.ParseFloat(val, 64); err == nil {
					item.Features[h] = fv
				}
			}
		}
		items = append(items, item)
		row++
	}

	return &Catalog{Items: items, columns: columns, source: path}, nil
}
