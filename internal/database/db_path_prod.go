//go:build prod

package database

import (
	"os"
	"path/filepath"

	"memerender/internal/config"
	"memerender/internal/logging"
)

// GetDefaultDBPath places the database beside config.yaml in the user
// config dir, falling back to the working directory.
func GetDefaultDBPath() string {
	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		logging.L().Warn("no user config dir, database stays in working dir", "err", err)
		return dbFileName
	}
	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logging.L().Warn("create app dir", "dir", dir, "err", err)
		return dbFileName
	}
	return filepath.Join(dir, dbFileName)
}

func IsDevelopment() bool {
	return false
}
