package loader

import (
	"encoding/json"
	"fmt"

	"netimpact/internal/domain"
)

// ParseJSON decodes a JSON configuration export. Key order in the document
// is preserved, which keeps diff output stable across runs.
func ParseJSON(data []byte) (*domain.Tree, error) {
	tree := domain.NewTree()
	if err := json.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}
	return tree, nil
}
