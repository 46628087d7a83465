package models

// Graph is the wire shape consumed by the canvas: one node per device,
// one edge per link, in creation order.
type Graph struct {
	Nodes []Node      `json:"nodes"`
	Edges []Edge      `json:"edges"`
	Stats *GraphStats `json:"stats,omitempty"`
}

// Position is a point in canvas coordinate space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the display attributes rendered inside a node.
type NodeData struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	IP     string `json:"ip,omitempty"`
	Status string `json:"status"`
}

// Node is a device projected for the canvas.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// EdgeData carries the display attributes of an edge.
type EdgeData struct {
	Status string `json:"status"`
}

// Edge is a link projected for the canvas. SourceHandle and TargetHandle
// name the docking points on each endpoint node, when set.
type Edge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Label        string   `json:"label,omitempty"`
	SourceHandle string   `json:"sourceHandle,omitempty"`
	TargetHandle string   `json:"targetHandle,omitempty"`
	Data         EdgeData `json:"data"`
}

// GraphStats summarizes the projected graph.
type GraphStats struct {
	TotalNodes      int            `json:"total_nodes"`
	TotalEdges      int            `json:"total_edges"`
	DevicesByType   map[string]int `json:"devices_by_type,omitempty"`
	DevicesByStatus map[string]int `json:"devices_by_status,omitempty"`
}
