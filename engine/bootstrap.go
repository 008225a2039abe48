package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nutrisolve/mealrec/artifact"
	"github.com/nutrisolve/mealrec/catalog"
	"github.com/nutrisolve/mealrec/core"
	"github.com/nutrisolve/mealrec/feast"
	"github.com/nutrisolve/mealrec/rerank"
	"github.com/nutrisolve/mealrec/store"
)

// DefaultCatalogKey 是 KV 存储中目录快照的默认 key。
const DefaultCatalogKey = "mealrec:catalog"

// Bootstrap 按配置完成引擎的全部启动工作：加载工件、加载目录、
// 可选的在线特征补全，然后装配引擎。任何环节失败都是致命配置错误。
func Bootstrap(ctx context.Context, cfg *Config, log zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	bundle, err := artifact.Load(ctx, cfg.ArtifactDir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", cfg.ArtifactDir).Str("version", bundle.ModelVersion()).
		Msg("artifacts loaded")

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("source", cat.Source()).Int("items", cat.Len()).Msg("catalog loaded")

	if cfg.Catalog.Feast.Enabled {
		if err := enrichFromFeast(ctx, cfg.Catalog.Feast, cat); err != nil {
			return nil, err
		}
		log.Debug().Int("features", len(cfg.Catalog.Feast.Features)).Msg("catalog enriched")
	}

	opts := []Option{WithDefaultTopK(cfg.DefaultTopK), WithLogger(log)}
	if len(cfg.GoalRules) > 0 {
		rules := make([]rerank.GoalRule, 0, len(cfg.GoalRules))
		for _, rc := range cfg.GoalRules {
			rules = append(rules, rerank.GoalRule{Goal: rc.Goal, When: rc.When, Boost: rc.Boost})
		}
		opts = append(opts, WithGoalRules(rules))
	}
	return New(bundle, cat, opts...)
}

func loadCatalog(ctx context.Context, cfg *Config) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case "", "file":
		return catalog.Load(cfg.Catalog.ProcessedPath, cfg.Catalog.RawPath)
	case "store":
		kv, err := openStore(cfg.Catalog.Store)
		if err != nil {
			return nil, err
		}
		defer kv.Close()

		key := cfg.Catalog.Store.Key
		if key == "" {
			key = DefaultCatalogKey
		}
		return catalog.LoadFromStore(ctx, kv, key)
	default:
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: unknown source %q", cfg.Catalog.Source))
	}
}

func openStore(cfg StoreConfig) (core.KeyValueStore, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(cfg.Addr, cfg.DB)
	default:
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotSupported,
			fmt.Sprintf("store: unknown backend %q", cfg.Backend))
	}
}

func enrichFromFeast(ctx context.Context, cfg FeastConfig, cat *catalog.Catalog) error {
	client, err := feast.NewGrpcClient(cfg.Host, cfg.Port, cfg.Project)
	if err != nil {
		return err
	}
	defer client.Close()

	enricher := &catalog.Enricher{
		Client:    client,
		EntityKey: cfg.EntityKey,
		Features:  cfg.Features,
		Project:   cfg.Project,
	}
	return enricher.Enrich(ctx, cat)
}
