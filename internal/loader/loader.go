// Package loader turns device configurations into trees the analysis
// engine can work with. Three source formats are supported: structured
// JSON exports, YAML documents, and IOS-style CLI text captured from a
// running device. The engine itself never sees the source format.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"netimpact/internal/domain"
)

// Format identifies a configuration source format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCLI  Format = "cli"
)

// Load reads a configuration file and parses it into a tree. The format is
// chosen by file extension first, content sniffing second.
func Load(path string) (*domain.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, DetectFormat(path, data))
}

// Parse decodes configuration bytes in the given format.
func Parse(data []byte, format Format) (*domain.Tree, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatCLI:
		return ParseCLI(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// DetectFormat picks the parser for a configuration source. An explicit
// file extension wins; otherwise the content decides: JSON documents open
// with a brace, CLI captures carry bang comments or interface stanzas, and
// YAML is the fallback for everything structured but braceless.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cfg", ".conf", ".txt", ".ios":
		return FormatCLI
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "!" || strings.HasPrefix(line, "interface ") || strings.HasPrefix(line, "hostname ") {
			return FormatCLI
		}
	}
	return FormatYAML
}
