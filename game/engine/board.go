package engine

// WallLayout records wall segments on two independent grids.
//
// Horizontal[r][c] blocks the edge between (r,c) and (r+1,c); it has rows-1
// rows and cols columns. Vertical[r][c] blocks the edge between (r,c) and
// (r,c+1); it has rows rows and cols-1 columns. A placed wall always covers
// two adjacent segments.
type WallLayout struct {
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	Horizontal [][]bool `json:"horizontal"`
	Vertical   [][]bool `json:"vertical"`
}

// NewWallLayout creates an empty layout for a rows x cols board
func NewWallLayout(rows, cols int) *WallLayout {
	l := &WallLayout{
		Rows:       rows,
		Cols:       cols,
		Horizontal: make([][]bool, max(rows-1, 0)),
		Vertical:   make([][]bool, rows),
	}
	for r := range l.Horizontal {
		l.Horizontal[r] = make([]bool, cols)
	}
	for r := range l.Vertical {
		l.Vertical[r] = make([]bool, max(cols-1, 0))
	}
	return l
}

// Clone returns a deep copy of the layout
func (l *WallLayout) Clone() *WallLayout {
	c := &WallLayout{
		Rows:       l.Rows,
		Cols:       l.Cols,
		Horizontal: make([][]bool, len(l.Horizontal)),
		Vertical:   make([][]bool, len(l.Vertical)),
	}
	for r, row := range l.Horizontal {
		c.Horizontal[r] = append([]bool(nil), row...)
	}
	for r, row := range l.Vertical {
		c.Vertical[r] = append([]bool(nil), row...)
	}
	return c
}

// HasHorizontal reports whether a horizontal segment lies below (r,c)
func (l *WallLayout) HasHorizontal(r, c int) bool {
	if r < 0 || r >= len(l.Horizontal) || c < 0 || c >= len(l.Horizontal[r]) {
		return false
	}
	return l.Horizontal[r][c]
}

// HasVertical reports whether a vertical segment lies right of (r,c)
func (l *WallLayout) HasVertical(r, c int) bool {
	if r < 0 || r >= len(l.Vertical) || c < 0 || c >= len(l.Vertical[r]) {
		return false
	}
	return l.Vertical[r][c]
}

// ValidAnchor reports whether a wall may be anchored at (r,c)
func (l *WallLayout) ValidAnchor(anchor Position) bool {
	return anchor.Row >= 0 && anchor.Row <= l.Rows-2 && anchor.Col >= 0 && anchor.Col <= l.Cols-2
}

// Segments returns the two segment coordinates a wall at anchor occupies
func Segments(o Orientation, anchor Position) [2]Position {
	if o == Vertical {
		return [2]Position{anchor, {Row: anchor.Row + 1, Col: anchor.Col}}
	}
	return [2]Position{anchor, {Row: anchor.Row, Col: anchor.Col + 1}}
}

// Overlaps reports whether either segment of the wall is already set.
// Only segments of the same orientation are compared.
func (l *WallLayout) Overlaps(o Orientation, anchor Position) bool {
	for _, seg := range Segments(o, anchor) {
		if o == Vertical && l.HasVertical(seg.Row, seg.Col) {
			return true
		}
		if o == Horizontal && l.HasHorizontal(seg.Row, seg.Col) {
			return true
		}
	}
	return false
}

// Place sets both segments of the wall in place. Callers must have checked
// ValidAnchor; layouts reachable from a GameState are never passed here.
func (l *WallLayout) Place(o Orientation, anchor Position) {
	for _, seg := range Segments(o, anchor) {
		if o == Vertical {
			l.Vertical[seg.Row][seg.Col] = true
		} else {
			l.Horizontal[seg.Row][seg.Col] = true
		}
	}
}

// With returns a copy of the layout with the wall placed
func (l *WallLayout) With(o Orientation, anchor Position) *WallLayout {
	next := l.Clone()
	next.Place(o, anchor)
	return next
}

// Count returns the number of set segments of each orientation
func (l *WallLayout) Count() (horizontal, vertical int) {
	for _, row := range l.Horizontal {
		for _, set := range row {
			if set {
				horizontal++
			}
		}
	}
	for _, row := range l.Vertical {
		for _, set := range row {
			if set {
				vertical++
			}
		}
	}
	return horizontal, vertical
}

// Paired reports whether the segments could have come from whole walls:
// every maximal run of set segments along a boundary has even length.
func (l *WallLayout) Paired() bool {
	for _, row := range l.Horizontal {
		run := 0
		for _, set := range row {
			if set {
				run++
				continue
			}
			if run%2 != 0 {
				return false
			}
			run = 0
		}
		if run%2 != 0 {
			return false
		}
	}
	for c := 0; c < l.Cols-1; c++ {
		run := 0
		for r := range l.Vertical {
			if l.HasVertical(r, c) {
				run++
				continue
			}
			if run%2 != 0 {
				return false
			}
			run = 0
		}
		if run%2 != 0 {
			return false
		}
	}
	return true
}

// directions in north, south, west, east order
var directions = []Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// Graph is the board adjacency derived from a WallLayout, indexed by (row, col)
type Graph struct {
	rows int
	cols int
	adj  [][][]Position
}

// BuildGraph computes every cell's neighbour set from scratch
func BuildGraph(l *WallLayout) *Graph {
	g := &Graph{
		rows: l.Rows,
		cols: l.Cols,
		adj:  make([][][]Position, l.Rows),
	}
	for r := 0; r < l.Rows; r++ {
		g.adj[r] = make([][]Position, l.Cols)
		for c := 0; c < l.Cols; c++ {
			neighbors := make([]Position, 0, 4)
			for _, d := range directions {
				n := Position{Row: r + d.Row, Col: c + d.Col}
				if n.Row < 0 || n.Row >= l.Rows || n.Col < 0 || n.Col >= l.Cols {
					continue
				}
				if blocked(l, Position{Row: r, Col: c}, n) {
					continue
				}
				neighbors = append(neighbors, n)
			}
			g.adj[r][c] = neighbors
		}
	}
	return g
}

// blocked reports whether a wall segment covers the edge between orthogonal cells a and b
func blocked(l *WallLayout, a, b Position) bool {
	switch {
	case a.Col == b.Col:
		top := min(a.Row, b.Row)
		return l.HasHorizontal(top, a.Col)
	case a.Row == b.Row:
		left := min(a.Col, b.Col)
		return l.HasVertical(a.Row, left)
	}
	return true
}

// Rows returns the number of rows
func (g *Graph) Rows() int { return g.rows }

// Cols returns the number of columns
func (g *Graph) Cols() int { return g.cols }

// InBounds reports whether pos lies on the board
func (g *Graph) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// Neighbors returns the open neighbours of pos, or nil when out of bounds
func (g *Graph) Neighbors(pos Position) []Position {
	if !g.InBounds(pos) {
		return nil
	}
	return g.adj[pos.Row][pos.Col]
}

// Adjacent reports whether b is a graph neighbour of a
func (g *Graph) Adjacent(a, b Position) bool {
	for _, n := range g.Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

// HasPath runs a breadth-first search from start and reports whether any
// reachable cell lies on goalRow.
func (g *Graph) HasPath(start Position, goalRow int) bool {
	return g.Distance(start, goalRow) >= 0
}

// Distance returns the length of the shortest path from start to goalRow,
// or -1 when the row is unreachable.
func (g *Graph) Distance(start Position, goalRow int) int {
	if !g.InBounds(start) {
		return -1
	}
	visited := make([][]bool, g.rows)
	for r := range visited {
		visited[r] = make([]bool, g.cols)
	}

	type item struct {
		pos  Position
		dist int
	}
	queue := []item{{pos: start}}
	visited[start.Row][start.Col] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.pos.Row == goalRow {
			return cur.dist
		}
		for _, n := range g.adj[cur.pos.Row][cur.pos.Col] {
			if !visited[n.Row][n.Col] {
				visited[n.Row][n.Col] = true
				queue = append(queue, item{pos: n, dist: cur.dist + 1})
			}
		}
	}
	return -1
}
