// Package route computes obstacle-avoiding connection paths between nodes
// on the script canvas.
//
// Routing is a pure function of its inputs: the anchors are derived from
// the two node rectangles, every strategy proposes at most one
// collision-free candidate, and Select picks the winner. When nothing is
// clear the straight line is returned anyway, so a connection always has a
// path to draw.
package route

import (
	"fmt"

	"github.com/duckyflow/duckyflow/pkg/script"
)

// Options tunes the router.
type Options struct {
	Margin       float64 // clearance kept around every obstacle
	CurveSamples int     // sampling intervals for curve collision tests
	AnchorGap    float64 // distance between a node edge and its anchor
}

// DefaultOptions returns the standard routing parameters.
func DefaultOptions() Options {
	return Options{
		Margin:       15,
		CurveSamples: 20,
		AnchorGap:    6,
	}
}

// Plan is the complete outcome of routing one connection.
type Plan struct {
	From, To   Point
	Candidates []Path // every candidate produced, in generation order
	Best       Path
	Fallback   bool // Best is the collision-blind straight line
}

// ConnectionPlan pairs a script connection with its plan.
type ConnectionPlan struct {
	Connection script.Connection
	Plan
}

// Router routes connections with a fixed set of options.
// It holds no state between calls.
type Router struct {
	opts Options
}

// NewRouter creates a router. A non-positive CurveSamples falls back to
// the default and a negative Margin is treated as zero.
func NewRouter(opts Options) *Router {
	if !(opts.Margin >= 0) {
		opts.Margin = 0
	}
	if opts.CurveSamples < 1 {
		opts.CurveSamples = DefaultOptions().CurveSamples
	}
	return &Router{opts: opts}
}

// Options returns the router's options.
func (r *Router) Options() Options {
	return r.opts
}

// Plan routes a connection from one node to another around obstacles.
// The two endpoint nodes are excluded from the obstacle set by id.
func (r *Router) Plan(from, to script.Node, obstacles Obstacles) Plan {
	a, b := Anchors(NodeBounds(from), NodeBounds(to), r.opts.AnchorGap)
	return r.PlanPoints(a, b, []string{from.ID, to.ID}, obstacles)
}

// PlanPoints routes between two anchors directly.
func (r *Router) PlanPoints(from, to Point, exclude []string, obstacles Obstacles) Plan {
	oracle := NewOracle(obstacles, exclude, r.opts)
	candidates := Candidates(from, to, oracle)
	best, fallback := Select(candidates, from, to)
	return Plan{
		From:       from,
		To:         to,
		Candidates: candidates,
		Best:       best,
		Fallback:   fallback,
	}
}

// PlanScript routes every connection of a script against all of its nodes.
// One spatial index is built for the call and shared by all connections.
func (r *Router) PlanScript(s *script.Script) ([]ConnectionPlan, error) {
	byID := make(map[string]script.Node, len(s.Nodes))
	for _, n := range s.Nodes {
		byID[n.ID] = n
	}
	index := NewIndex(ObstaclesFromNodes(s.Nodes))

	plans := make([]ConnectionPlan, 0, len(s.Connections))
	for _, c := range s.Connections {
		from, ok := byID[c.From]
		if !ok {
			return nil, fmt.Errorf("connection %q: from %q: %w", c.ID, c.From, script.ErrUnknownNode)
		}
		to, ok := byID[c.To]
		if !ok {
			return nil, fmt.Errorf("connection %q: to %q: %w", c.ID, c.To, script.ErrUnknownNode)
		}
		plans = append(plans, ConnectionPlan{
			Connection: c,
			Plan:       r.Plan(from, to, index),
		})
	}
	return plans, nil
}

// Connect routes from one node to another among all canvas nodes using the
// default options and returns the chosen path.
func Connect(from, to script.Node, nodes []script.Node) Path {
	return NewRouter(DefaultOptions()).Plan(from, to, ObstaclesFromNodes(nodes)).Best
}
