package dictionary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores one JSON file per looked-up expression under rootDir.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

// filePath maps an expression to its cache file. Multi-word expressions like
// "junk food" share a file with their underscored form.
func (f *FileCache) filePath(expression string) string {
	name := strings.ToLower(strings.TrimSpace(expression))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return filepath.Join(f.rootDir, name+".json")
}

func (cache *FileCache) cache(expression string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(expression)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(expression)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, fmt.Errorf("fetch %q > %w", expression, err)
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return nil, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(expression string) ([]byte, error) {
	file, err := os.Open(cache.filePath(expression))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
