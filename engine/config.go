package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTopK 是请求未指定 top_k 时的返回条数。
const DefaultTopK = 5

// DefaultConfigPath 是未显式指定配置路径时的默认位置。
const DefaultConfigPath = "config.yaml"

// Config 是引擎的启动配置，YAML 加载。
// 零值可用：ArtifactDir/Catalog 路径为空时按 DefaultConfig 的约定补齐。
type Config struct {
	// ArtifactDir 是训练产物目录（模型、预处理器、特征选择器、特征清单）。
	ArtifactDir string `yaml:"artifact_dir"`

	Catalog CatalogConfig `yaml:"catalog"`

	// DefaultTopK 覆盖包级默认返回条数，<=0 时取 DefaultTopK。
	DefaultTopK int `yaml:"default_top_k"`

	// GoalRules 覆盖内置的目标调权规则，空时使用内置规则。
	GoalRules []GoalRuleConfig `yaml:"goal_rules"`
}

// CatalogConfig 描述候选目录的加载来源。
type CatalogConfig struct {
	// Source 取 "file" 或 "store"，空串按 file 处理。
	Source string `yaml:"source"`

	// ProcessedPath 是预处理后的目录 CSV，优先加载。
	ProcessedPath string `yaml:"processed_path"`

	// RawPath 是原始目录 CSV，processed 缺失时回退。
	RawPath string `yaml:"raw_path"`

	Store StoreConfig `yaml:"store"`
	Feast FeastConfig `yaml:"feast"`
}

// StoreConfig 描述目录快照所在的 KV 存储。
type StoreConfig struct {
	// Backend 取 "memory" 或 "redis"。
	Backend string `yaml:"backend"`
	Addr    string `yaml:"addr"`
	DB      int    `yaml:"db"`

	// Key 是目录快照的 hash key。
	Key string `yaml:"key"`
}

// FeastConfig 描述可选的在线特征补全。Enabled 为 false 时整段忽略。
type FeastConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Host      string   `yaml:"host"`
	Port      int      `yaml:"port"`
	Project   string   `yaml:"project"`
	EntityKey string   `yaml:"entity_key"`
	Features  []string `yaml:"features"`
}

// GoalRuleConfig 是一条声明式调权规则，表达式语法见 pkg/dsl。
type GoalRuleConfig struct {
	Goal  string  `yaml:"goal"`
	When  string  `yaml:"when"`
	Boost float64 `yaml:"boost"`
}

// DefaultConfig 返回本地开发用的默认配置。
func DefaultConfig() *Config {
	return &Config{
		ArtifactDir: "models",
		Catalog: CatalogConfig{
			Source:        "file",
			ProcessedPath: "data/processed/foods_processed.csv",
			RawPath:       "data/food_data.csv",
		},
		DefaultTopK: DefaultTopK,
	}
}

// LoadConfig 从 YAML 文件加载配置。
// 仅默认位置（DefaultConfigPath）缺失时回退 DefaultConfig；
// 显式指定的路径不存在是配置错误，直接报错而不是静默吞掉。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultConfigPath {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = DefaultTopK
	}
	return cfg, nil
}
