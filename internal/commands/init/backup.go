package initcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ConfigExists reports whether a config file exists at path.
func ConfigExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// BackupConfig copies the config at path to path.bak, replacing any older
// backup and keeping the file mode. It returns "" when there is nothing to
// back up.
func BackupConfig(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat config: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}

	backup := path + ".bak"
	if err := os.WriteFile(backup, content, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(backup, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return backup, nil
}
