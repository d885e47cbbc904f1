package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver for gorm (no CGO).
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store holds the gorm handle and provides access to repositories.
type Store struct {
	db *gorm.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite has a single writer; one connection keeps the per-connection
	// pragmas in effect for every query.
	sqlDB.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := db.AutoMigrate(&CompletionRecord{}, &AttemptEvent{}, &AwardedAchievement{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying gorm handle for raw queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CompletionRepo returns a CompletionRepo backed by this store.
func (s *Store) CompletionRepo() CompletionRepo {
	return &completionRepo{db: s.db}
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db}
}

// AwardRepo returns an AwardRepo backed by this store.
func (s *Store) AwardRepo() AwardRepo {
	return &awardRepo{db: s.db}
}

// InTx runs fn inside one transaction. Repos passed to fn are bound to it;
// an error from fn rolls back every write fn made. With the single pooled
// connection, transactions from concurrent callers run one after another.
func (s *Store) InTx(ctx context.Context, fn func(TxRepos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepos{
			Completions: &completionRepo{db: tx},
			Attempts:    &attemptRepo{db: tx},
		})
	})
}

// applyPragmas configures SQLite for a small multi-writer workload.
func applyPragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GRAMMARQUEST_DB environment variable
// 2. $XDG_DATA_HOME/grammarquest/grammarquest.db
// 3. ~/.local/share/grammarquest/grammarquest.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GRAMMARQUEST_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "grammarquest", "grammarquest.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
