package server

import (
	"strconv"

	"github.com/villeh/netcanvas/internal/models"
)

// Topology projects the full device and link listings into the graph view
// consumed by the canvas. It is a pure transform recomputed per request;
// node and edge order follows creation order because the listings do.
func (s *Store) Topology() (*models.Graph, error) {
	devices, err := s.Devices()
	if err != nil {
		return nil, err
	}
	links, err := s.Links()
	if err != nil {
		return nil, err
	}
	return BuildGraph(devices, links), nil
}

// BuildGraph maps rows onto canvas nodes and edges and tallies the stats
// block in the same pass.
func BuildGraph(devices []models.Device, links []models.Link) *models.Graph {
	graph := &models.Graph{
		Nodes: make([]models.Node, 0, len(devices)),
		Edges: make([]models.Edge, 0, len(links)),
		Stats: &models.GraphStats{
			TotalNodes:      len(devices),
			TotalEdges:      len(links),
			DevicesByType:   make(map[string]int),
			DevicesByStatus: make(map[string]int),
		},
	}

	for _, d := range devices {
		graph.Nodes = append(graph.Nodes, models.Node{
			ID:       strconv.FormatUint(uint64(d.ID), 10),
			Position: models.Position{X: d.X, Y: d.Y},
			Data: models.NodeData{
				Name:   d.Name,
				Type:   string(d.Type),
				IP:     d.IP,
				Status: string(d.Status),
			},
		})
		graph.Stats.DevicesByType[string(d.Type)]++
		graph.Stats.DevicesByStatus[string(d.Status)]++
	}

	for _, l := range links {
		graph.Edges = append(graph.Edges, models.Edge{
			ID:           strconv.FormatUint(uint64(l.ID), 10),
			Source:       strconv.FormatUint(uint64(l.FromID), 10),
			Target:       strconv.FormatUint(uint64(l.ToID), 10),
			Label:        l.Label,
			SourceHandle: l.FromHandle,
			TargetHandle: l.ToHandle,
			Data:         models.EdgeData{Status: string(l.Status)},
		})
	}

	return graph
}
