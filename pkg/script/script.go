// Package script provides the node graph model of a DuckyScript automation
// script as it is placed on the editor canvas.
package script

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NodeType is the kind of step a node performs.
type NodeType string

const (
	TypeCommand        NodeType = "command"
	TypeKeyCombination NodeType = "key_combination"
	TypeTextInput      NodeType = "text_input"
	TypeDelay          NodeType = "delay"
	TypeLoop           NodeType = "loop"
	TypeCondition      NodeType = "condition"
)

// Default node size on the canvas, used when a node carries no explicit size.
const (
	DefaultNodeWidth  = 112.0
	DefaultNodeHeight = 50.0
)

// Errors returned by model operations.
var (
	ErrUnknownNode    = errors.New("unknown node")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrSelfConnection = errors.New("connection from a node to itself")
	ErrEmptyID        = errors.New("empty id")
	ErrUnknownType    = errors.New("unknown node type")
)

// Node is a single step placed on the canvas.
// X and Y are the top-left corner; Width and Height are optional.
type Node struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Label  string   `json:"label"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`

	Command     string   `json:"command,omitempty"`     // command
	Keys        []string `json:"keys,omitempty"`        // key_combination
	Modifiers   []string `json:"modifiers,omitempty"`   // key_combination
	Text        string   `json:"text,omitempty"`        // text_input
	UseAltCodes bool     `json:"useAltCodes,omitempty"` // text_input
	Duration    int      `json:"duration,omitempty"`    // delay, milliseconds
	Iterations  int      `json:"iterations,omitempty"`  // loop
	Children    []Node   `json:"children,omitempty"`    // loop
	Condition   string   `json:"condition,omitempty"`   // condition
	TrueNodes   []Node   `json:"trueNodes,omitempty"`   // condition
	FalseNodes  []Node   `json:"falseNodes,omitempty"`  // condition
}

// Size returns the node's width and height, substituting the defaults for
// missing (zero or negative) dimensions.
func (n Node) Size() (w, h float64) {
	w, h = n.Width, n.Height
	if w <= 0 {
		w = DefaultNodeWidth
	}
	if h <= 0 {
		h = DefaultNodeHeight
	}
	return w, h
}

// Connection is a directed link between two nodes, by id.
type Connection struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Metadata describes the script as a document.
type Metadata struct {
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Created     string `json:"created"`
	Modified    string `json:"modified"`
}

// Script is the complete canvas: nodes, links between them, and metadata.
type Script struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Metadata    Metadata     `json:"metadata"`
}

// New creates an empty script with the given name.
func New(name string) *Script {
	return &Script{
		Nodes:       make([]Node, 0),
		Connections: make([]Connection, 0),
		Metadata: Metadata{
			Name:     name,
			Filename: Slug(name, "new_script"),
		},
	}
}

// NewNodeID returns a fresh node id.
func NewNodeID() string {
	return "node_" + shortID()
}

// NewConnectionID returns a fresh connection id.
func NewConnectionID() string {
	return "conn_" + shortID()
}

func shortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// slugWhitespace covers ASCII and Unicode space characters, including
// no-break spaces and the line and paragraph separators.
const slugWhitespace = `\s\v\p{Zs}\x{2028}\x{2029}\x{feff}`

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9` + slugWhitespace + `-]`)
	slugSpace = regexp.MustCompile(`[` + slugWhitespace + `]+`)
)

// Slug derives a file-name friendly form of name: lowercase, only letters,
// digits and dashes, whitespace runs folded to underscores, at most 50 bytes.
// Returns fallback if nothing remains.
func Slug(name, fallback string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "_")
	if len(s) > 50 {
		s = s[:50]
	}
	if s == "" {
		return fallback
	}
	return s
}

// AddNode appends a node. An empty id is replaced with a generated one.
func (s *Script) AddNode(n Node) (string, error) {
	if n.ID == "" {
		n.ID = NewNodeID()
	}
	if s.NodeIndex(n.ID) >= 0 {
		return "", fmt.Errorf("node %q: %w", n.ID, ErrDuplicateID)
	}
	s.Nodes = append(s.Nodes, n)
	return n.ID, nil
}

// AddConnection links from to to and returns the new connection id.
func (s *Script) AddConnection(from, to string) (string, error) {
	if s.NodeIndex(from) < 0 {
		return "", fmt.Errorf("connection from %q: %w", from, ErrUnknownNode)
	}
	if s.NodeIndex(to) < 0 {
		return "", fmt.Errorf("connection to %q: %w", to, ErrUnknownNode)
	}
	if from == to {
		return "", fmt.Errorf("connection on %q: %w", from, ErrSelfConnection)
	}
	for _, c := range s.Connections {
		if c.From == from && c.To == to {
			return "", fmt.Errorf("connection %q -> %q: %w", from, to, ErrDuplicateID)
		}
	}
	id := NewConnectionID()
	s.Connections = append(s.Connections, Connection{ID: id, From: from, To: to})
	return id, nil
}

// RemoveNode deletes a node and every connection attached to it.
// Reports whether the node existed.
func (s *Script) RemoveNode(id string) bool {
	idx := s.NodeIndex(id)
	if idx < 0 {
		return false
	}
	s.Nodes = append(s.Nodes[:idx], s.Nodes[idx+1:]...)

	kept := s.Connections[:0]
	for _, c := range s.Connections {
		if c.From != id && c.To != id {
			kept = append(kept, c)
		}
	}
	s.Connections = kept
	return true
}

// NodeIndex returns the index of a node, or -1 if not found.
func (s *Script) NodeIndex(id string) int {
	for i, n := range s.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Node returns the node with the given id.
func (s *Script) Node(id string) (Node, bool) {
	idx := s.NodeIndex(id)
	if idx < 0 {
		return Node{}, false
	}
	return s.Nodes[idx], true
}

// Validate checks that the script is well-formed.
func (s *Script) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: %w", i, ErrEmptyID)
		}
		if seen[n.ID] {
			return fmt.Errorf("node %q: %w", n.ID, ErrDuplicateID)
		}
		seen[n.ID] = true
		if !n.Type.Valid() {
			return fmt.Errorf("node %q: %w %q", n.ID, ErrUnknownType, n.Type)
		}
	}

	connIDs := make(map[string]bool, len(s.Connections))
	for i, c := range s.Connections {
		if c.ID != "" {
			if connIDs[c.ID] {
				return fmt.Errorf("connection %q: %w", c.ID, ErrDuplicateID)
			}
			connIDs[c.ID] = true
		}
		if !seen[c.From] {
			return fmt.Errorf("connection %d: from %q: %w", i, c.From, ErrUnknownNode)
		}
		if !seen[c.To] {
			return fmt.Errorf("connection %d: to %q: %w", i, c.To, ErrUnknownNode)
		}
		if c.From == c.To {
			return fmt.Errorf("connection %d on %q: %w", i, c.From, ErrSelfConnection)
		}
	}

	return nil
}

// OrphanNodes returns the ids of nodes that no connection touches,
// in canvas order.
func (s *Script) OrphanNodes() []string {
	linked := make(map[string]bool)
	for _, c := range s.Connections {
		linked[c.From] = true
		linked[c.To] = true
	}
	var result []string
	for _, n := range s.Nodes {
		if !linked[n.ID] {
			result = append(result, n.ID)
		}
	}
	return result
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case TypeCommand, TypeKeyCombination, TypeTextInput, TypeDelay, TypeLoop, TypeCondition:
		return true
	}
	return false
}

// String returns a short summary of the script.
func (s *Script) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Script: %s\n", s.Metadata.Name))
	sb.WriteString(fmt.Sprintf("  Nodes: %d\n", len(s.Nodes)))
	sb.WriteString(fmt.Sprintf("  Connections: %d\n", len(s.Connections)))
	return sb.String()
}
