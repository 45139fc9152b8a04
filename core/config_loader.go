package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileRawConfigLoader reads a TOML or YAML document from Path. The format is
// chosen by file extension (.toml, .yaml, .yml).
type FileRawConfigLoader struct {
	Path string
	// Optional makes a missing file load as an empty document.
	Optional bool
}

func NewFileRawConfigLoader(path string) *FileRawConfigLoader {
	return &FileRawConfigLoader{Path: path}
}

func (l *FileRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if l == nil || strings.TrimSpace(l.Path) == "" {
		return nil, fmt.Errorf("core: config path is required")
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if l.Optional && errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("core: read config %s: %w", l.Path, err)
	}
	return decodeRawConfig(l.Path, data)
}

func decodeRawConfig(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("core: decode toml config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("core: decode yaml config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("core: unsupported config format %q", ext)
	}
	return raw, nil
}
