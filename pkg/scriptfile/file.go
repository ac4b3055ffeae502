package scriptfile

import (
	"fmt"
	"os"

	"github.com/duckyflow/duckyflow/pkg/script"
)

// ReadFile reads and parses a project file.
func ReadFile(path string) (*script.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}
