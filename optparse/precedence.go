package optparse

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// SourceType names a layer of the initial values, lowest precedence first.
type SourceType int

const (
	SourceDefaults SourceType = iota // registry defaults
	SourceFile                       // defaults file
	SourceOverride                   // caller overrides passed to Parse
)

func (s SourceType) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceOverride:
		return "override"
	default:
		return fmt.Sprintf("SourceType(%d)", int(s))
	}
}

// LoadDefaultsFile reads a YAML or JSON mapping from path on fsys into the
// file layer, replacing any previously loaded file. A missing file clears the
// layer and is not an error. Keys need not name a registered dest.
func (p *Parser) LoadDefaultsFile(fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Debug("defaults file not found", zap.String("path", path))
		p.fileDefaults = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read defaults file %s: %w", path, err)
	}

	layer, err := decodeDefaults(data)
	if err != nil {
		return fmt.Errorf("defaults file %s: %w", path, err)
	}
	p.fileDefaults = layer
	p.logger.Debug("defaults file loaded", zap.String("path", path), zap.Int("keys", len(layer)))
	return nil
}

// SetFileDefaults installs the file layer directly.
func (p *Parser) SetFileDefaults(layer D) {
	p.fileDefaults = maps.Clone(layer)
}

func decodeDefaults(data []byte) (D, error) {
	if strings.TrimSpace(string(data)) == "" {
		return D{}, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigurationError{Message: "invalid defaults document: " + err.Error()}
	}
	switch m := doc.(type) {
	case nil:
		return D{}, nil
	case map[string]any:
		return D(m), nil
	default:
		return nil, configErrorf("defaults document must be a mapping, got %T", doc)
	}
}

// Source reports which layer supplies dest's initial value for a parse given
// overrides, and whether any layer does.
func (p *Parser) Source(dest string, overrides D) (SourceType, bool) {
	if _, ok := overrides[dest]; ok {
		return SourceOverride, true
	}
	if _, ok := p.fileDefaults[dest]; ok {
		return SourceFile, true
	}
	if _, ok := p.defaults[dest]; ok {
		return SourceDefaults, true
	}
	return 0, false
}

// DebugPrecedence describes the layers and their sizes, lowest first.
func (p *Parser) DebugPrecedence(overrides D) string {
	var b strings.Builder
	b.WriteString("initial value sources (in resolution order):\n")
	fmt.Fprintf(&b, "  %d (%s): %d keys\n", SourceDefaults, SourceDefaults, len(p.defaults))
	fmt.Fprintf(&b, "  %d (%s): %d keys\n", SourceFile, SourceFile, len(p.fileDefaults))
	fmt.Fprintf(&b, "  %d (%s): %d keys\n", SourceOverride, SourceOverride, len(overrides))
	return b.String()
}
