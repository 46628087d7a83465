// Package layout computes deterministic top-to-bottom positions for a
// directed graph, with the fixed footprint and separations the canvas
// renders with. Same inputs always produce the same output.
package layout

// Canvas metrics. Every node is laid out with the same footprint.
const (
	NodeWidth  = 220.0
	NodeHeight = 70.0
	RankSep    = 80.0
	NodeSep    = 55.0
)

// Edge is a directed source→target pair, by node id.
type Edge struct {
	Source string
	Target string
}

// Point is a computed canvas position (top-left corner of the node).
type Point struct {
	X float64
	Y float64
}

// TopToBottom assigns each node a rank (row) and centers every row around
// x = 0. Ranks come from longest-path layering over the edge set: a
// target sits at least one rank below its source. Self-edges are ignored
// and cycles are broken by bounding the relaxation, so the routine always
// terminates. Nodes keep their input order within a rank.
func TopToBottom(nodeIDs []string, edges []Edge) map[string]Point {
	rank := make(map[string]int, len(nodeIDs))
	for _, id := range nodeIDs {
		rank[id] = 0
	}

	// Relax edges until stable, at most |V| passes. Edges referencing
	// unknown nodes are skipped.
	for pass := 0; pass < len(nodeIDs); pass++ {
		changed := false
		for _, e := range edges {
			if e.Source == e.Target {
				continue
			}
			rs, ok := rank[e.Source]
			if !ok {
				continue
			}
			if rt, ok := rank[e.Target]; ok && rt < rs+1 {
				rank[e.Target] = rs + 1
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Group into rows, preserving input order.
	maxRank := 0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}
	rows := make([][]string, maxRank+1)
	for _, id := range nodeIDs {
		r := rank[id]
		rows[r] = append(rows[r], id)
	}

	points := make(map[string]Point, len(nodeIDs))
	for r, row := range rows {
		width := float64(len(row))*NodeWidth + float64(len(row)-1)*NodeSep
		x := -width / 2
		y := float64(r) * (NodeHeight + RankSep)
		for _, id := range row {
			points[id] = Point{X: x, Y: y}
			x += NodeWidth + NodeSep
		}
	}
	return points
}
