package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const upTemplate = `-- Migration: %s
-- Created: %s

`

const downTemplate = `-- Migration: %s (rollback)
-- Created: %s

`

var nameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// CreateMigration creates a timestamped up/down migration file pair and
// returns their paths.
func CreateMigration(migrationsDir, name string) (upPath, downPath string, err error) {
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	baseName := fmt.Sprintf("%s_%s", version, sanitizeName(name))

	upPath = filepath.Join(migrationsDir, baseName+".up.sql")
	downPath = filepath.Join(migrationsDir, baseName+".down.sql")
	created := now.Format(time.RFC3339)

	if err := os.WriteFile(upPath, []byte(fmt.Sprintf(upTemplate, name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(fmt.Sprintf(downTemplate, name, created)), 0o644); err != nil {
		_ = os.Remove(upPath)
		return "", "", fmt.Errorf("failed to create down migration: %w", err)
	}
	return upPath, downPath, nil
}

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	s = nameSanitizer.ReplaceAllString(s, "")
	if s == "" {
		s = "migration"
	}
	return s
}
