package route

import (
	"github.com/dhconnelly/rtreego"

	"github.com/duckyflow/duckyflow/pkg/script"
)

// Obstacle is a node rectangle that connections must not cross.
type Obstacle struct {
	ID     string
	Bounds Rect
}

// Obstacles is a read-only obstacle set.
// Near returns at least every obstacle whose bounds overlap area; it may
// return more. The collision oracle makes the exact decision.
type Obstacles interface {
	Near(area Rect) []Obstacle
}

// List is an obstacle set scanned linearly.
type List []Obstacle

// Near returns every obstacle in the list.
func (l List) Near(area Rect) []Obstacle {
	return l
}

// ObstaclesFromNodes converts canvas nodes into an obstacle list.
func ObstaclesFromNodes(nodes []script.Node) List {
	list := make(List, len(nodes))
	for i, n := range nodes {
		list[i] = Obstacle{ID: n.ID, Bounds: NodeBounds(n)}
	}
	return list
}

// indexEntry wraps an obstacle for R-tree storage.
type indexEntry struct {
	obstacle Obstacle
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *indexEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// querySlack pads index queries so that obstacles touching the query box
// edge are still returned.
const querySlack = 1.0

// Index is an obstacle set backed by an R-tree, for canvases where many
// connections are routed against the same nodes.
type Index struct {
	tree *rtreego.Rtree
	// Obstacles with no area cannot be stored in the tree; they are
	// returned from every query.
	flat []Obstacle
	all  []Obstacle
}

// NewIndex builds an R-tree over the given obstacles.
func NewIndex(obstacles []Obstacle) *Index {
	idx := &Index{
		tree: rtreego.NewTree(2, 25, 50),
		all:  append([]Obstacle(nil), obstacles...),
	}

	for _, obs := range obstacles {
		bbox, err := toRTreeRect(obs.Bounds)
		if err != nil {
			idx.flat = append(idx.flat, obs)
			continue
		}
		idx.tree.Insert(&indexEntry{obstacle: obs, bbox: bbox})
	}

	return idx
}

// Len returns the number of obstacles in the index.
func (idx *Index) Len() int {
	return len(idx.all)
}

// Near returns the obstacles whose bounds intersect area. An area the tree
// cannot search returns every obstacle.
func (idx *Index) Near(area Rect) []Obstacle {
	bbox, err := toRTreeRect(normalizeArea(area).Expand(querySlack))
	if err != nil {
		return idx.all
	}

	results := idx.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results)+len(idx.flat))
	for _, item := range results {
		obstacles = append(obstacles, item.(*indexEntry).obstacle)
	}
	return append(obstacles, idx.flat...)
}

// normalizeArea turns a rectangle with negative extent into the box
// spanning the same corners.
func normalizeArea(r Rect) Rect {
	if r.Width < 0 {
		r.X, r.Width = r.X+r.Width, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = r.Y+r.Height, -r.Height
	}
	return r
}

func toRTreeRect(r Rect) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{r.X, r.Y},
		[]float64{r.Width, r.Height},
	)
}
