package cmd

import (
	"fmt"

	"github.com/abhisek/grammarquest/internal/achievements"
	"github.com/abhisek/grammarquest/internal/config"
	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/game"
	"github.com/abhisek/grammarquest/internal/logging"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// services bundles everything a command needs. Close releases the store
// and flushes the logger.
type services struct {
	logger       *zap.Logger
	store        *store.Store
	curriculum   *curriculum.Map
	progress     *progress.Service
	achievements *achievements.Service
	game         *game.Service
}

func (s *services) Close() {
	if s.store != nil {
		s.store.Close()
	}
	_ = s.logger.Sync()
}

// loadStatic resolves config, logger, curriculum and catalog. These never
// touch the database.
func loadStatic() (config.Config, *zap.Logger, *curriculum.Map, *achievements.Catalog, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, nil, err
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return cfg, nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	cur := curriculum.Default()
	if cfg.CurriculumPath != "" {
		if cur, err = curriculum.Load(cfg.CurriculumPath); err != nil {
			return cfg, nil, nil, nil, fmt.Errorf("load curriculum: %w", err)
		}
	}

	catalog := achievements.DefaultCatalog()
	if cfg.CatalogPath != "" {
		if catalog, err = achievements.LoadCatalog(cfg.CatalogPath, logger); err != nil {
			return cfg, nil, nil, nil, fmt.Errorf("load achievement catalog: %w", err)
		}
	}
	return cfg, logger, cur, catalog, nil
}

// openServices opens the store and builds the service graph.
func openServices(cmd *cobra.Command) (*services, error) {
	cfg, logger, cur, catalog, err := loadStatic()
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	p := progress.NewService(cur, st, cfg.Progress, logger)
	a := achievements.NewService(catalog, cur, st.CompletionRepo(), st.AwardRepo(), logger)
	return &services{
		logger:       logger,
		store:        st,
		curriculum:   cur,
		progress:     p,
		achievements: a,
		game:         game.NewService(p, a, logger),
	}, nil
}
