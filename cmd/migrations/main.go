package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/hotornot/internal/config"
)

var migrationsDir = filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")

func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name (or \"all\") is required.")
	}
	migrationName := os.Args[1]

	config.LoadDotEnv()
	cfg := config.FromEnv()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		logger.Fatal("failed to open postgres", zap.Error(err))
	}
	defer db.Close()

	files, err := migrationFiles(migrationsDir, migrationName)
	if err != nil {
		logger.Fatal("failed to resolve migration", zap.String("name", migrationName), zap.Error(err))
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			logger.Fatal("failed to read migration", zap.String("file", name), zap.Error(err))
		}
		if _, err := db.Exec(string(content)); err != nil {
			logger.Fatal("failed to execute migration", zap.String("file", name), zap.Error(err))
		}
		logger.Info("migration file executed successfully", zap.String("file", name))
	}
}

// migrationFiles resolves a migration name to file names inside basePath.
// "all" selects every up migration in lexical (timestamp) order.
func migrationFiles(basePath string, migrationName string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var pattern *regexp.Regexp
	if migrationName != "all" {
		pattern = regexp.MustCompile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if pattern == nil {
			if strings.HasSuffix(e.Name(), ".up.sql") {
				files = append(files, e.Name())
			}
			continue
		}
		if pattern.MatchString(e.Name()) {
			return []string{e.Name()}, nil
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("migration file not found")
	}
	sort.Strings(files)
	return files, nil
}
