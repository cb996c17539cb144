// Package catalog loads ToolSpec declarations from disk (YAML or TOML) so
// the demo/gateway process isn't limited to hardcoded Go literals, and
// writes a msgpack debug snapshot of a live catalog for inspection.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/toolsuggest/core/pkg/suggest"
)

// file is the on-disk shape of a catalog file: a flat list of tools under
// a top-level "tools" key.
type file struct {
	Tools []suggest.ToolSpec `yaml:"tools" toml:"tools"`
}

// Load reads a catalog file, dispatching on extension: ".yaml"/".yml" for
// YAML, ".toml" for TOML. Any other extension is an error.
func Load(path string) ([]suggest.ToolSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("catalog: parsing YAML %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("catalog: parsing TOML %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("catalog: unsupported extension %q for %s", ext, path)
	}
	return f.Tools, nil
}

// Snapshot is the msgpack debug dump of a live catalog: the tool specs plus
// the indexed term count.
type Snapshot struct {
	Tools     []suggest.ToolSpec `msgpack:"tools"`
	TermCount int                `msgpack:"term_count"`
}

// DumpSnapshot encodes snap as msgpack bytes.
func DumpSnapshot(snap Snapshot) ([]byte, error) {
	return msgpack.Marshal(snap)
}

// LoadSnapshot decodes msgpack bytes produced by DumpSnapshot.
func LoadSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}
