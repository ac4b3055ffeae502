// Package scriptfile reads saved canvas scenes.
package scriptfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/duckyflow/duckyflow/pkg/script"
)

// ErrInvalidFormat is returned when a document lacks one of the top-level
// sections of a saved project.
var ErrInvalidFormat = errors.New("invalid project file format")

// jsonScript mirrors script.Script with pointers so that missing sections
// can be told apart from empty ones.
type jsonScript struct {
	Nodes       *[]script.Node       `json:"nodes"`
	Connections *[]script.Connection `json:"connections"`
	Metadata    *script.Metadata     `json:"metadata"`
}

// ParseJSON parses a saved project.
func ParseJSON(data []byte) (*script.Script, error) {
	var j jsonScript
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	switch {
	case j.Nodes == nil:
		return nil, fmt.Errorf("%w: missing nodes", ErrInvalidFormat)
	case j.Connections == nil:
		return nil, fmt.Errorf("%w: missing connections", ErrInvalidFormat)
	case j.Metadata == nil:
		return nil, fmt.Errorf("%w: missing metadata", ErrInvalidFormat)
	}

	s := &script.Script{
		Nodes:       *j.Nodes,
		Connections: *j.Connections,
		Metadata:    *j.Metadata,
	}
	if s.Metadata.Filename == "" {
		s.Metadata.Filename = script.Slug(s.Metadata.Name, "script")
	}
	return s, nil
}
