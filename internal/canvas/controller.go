// Package canvas owns the in-memory graph state behind the topology
// canvas and reconciles user gestures (drag, select, connect, delete,
// search, auto-layout) with the API. The store stays the single source of
// truth: the local graph is a point-in-time copy, fully reloaded after
// every successful mutation rather than patched incrementally — the only
// exceptions are the two narrow optimistic updates noted on SetStatus and
// DragEnd.
package canvas

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/villeh/netcanvas/internal/client"
	"github.com/villeh/netcanvas/internal/layout"
	"github.com/villeh/netcanvas/internal/models"
)

// SelectionKind enumerates the mutually exclusive selection states.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectNode
	SelectEdge
)

// Selection is the current selection, at most one node or one edge.
type Selection struct {
	Kind SelectionKind
	ID   string
}

// Viewport describes the canvas transform: pan offset, zoom factor and
// the screen size of the canvas element.
type Viewport struct {
	X      float64
	Y      float64
	Zoom   float64
	Width  float64
	Height float64
}

// Center converts the viewport's screen center into canvas coordinates.
func (v Viewport) Center() (x, y float64) {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return (v.Width/2 - v.X) / zoom, (v.Height/2 - v.Y) / zoom
}

// Controller drives the canvas against the API.
type Controller struct {
	api      *client.Client
	notifier *Notifier

	// RefitView, when set, is called after auto-layout reloads the graph.
	RefitView func()

	mu        sync.Mutex
	nodes     []models.Node
	edges     []models.Edge
	selection Selection
}

// New builds a controller over the given API client.
func New(api *client.Client, notifier *Notifier) *Controller {
	return &Controller{api: api, notifier: notifier}
}

// Reload replaces the local graph with the current store contents. The
// selection is kept only if the selected entity still exists.
func (c *Controller) Reload(ctx context.Context) error {
	graph, err := c.api.Topology(ctx)
	if err != nil {
		c.notifier.Show(err.Error())
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = graph.Nodes
	c.edges = graph.Edges
	if !c.selectionExistsLocked() {
		c.selection = Selection{}
	}
	return nil
}

func (c *Controller) selectionExistsLocked() bool {
	switch c.selection.Kind {
	case SelectNode:
		for _, n := range c.nodes {
			if n.ID == c.selection.ID {
				return true
			}
		}
	case SelectEdge:
		for _, e := range c.edges {
			if e.ID == c.selection.ID {
				return true
			}
		}
	default:
		return true
	}
	return false
}

// Nodes returns a copy of the current node set.
func (c *Controller) Nodes() []models.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Edges returns a copy of the current edge set.
func (c *Controller) Edges() []models.Edge {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Edge, len(c.edges))
	copy(out, c.edges)
	return out
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// SelectionChanged applies a selection report from the canvas: the first
// reported node wins, then the first reported edge, else nothing.
// Selecting a node clears any selected edge and vice versa.
func (c *Controller) SelectionChanged(nodeIDs, edgeIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case len(nodeIDs) > 0:
		c.selection = Selection{Kind: SelectNode, ID: nodeIDs[0]}
	case len(edgeIDs) > 0:
		c.selection = Selection{Kind: SelectEdge, ID: edgeIDs[0]}
	default:
		c.selection = Selection{}
	}
}

// DragEnd persists a node's post-drag position with exactly one call.
// The drag already moved the node locally, so the local position is kept
// even when the persist fails; failure only raises a notification.
func (c *Controller) DragEnd(ctx context.Context, nodeID string, x, y float64) {
	c.mu.Lock()
	for i := range c.nodes {
		if c.nodes[i].ID == nodeID {
			c.nodes[i].Position = models.Position{X: x, Y: y}
			break
		}
	}
	c.mu.Unlock()

	id, err := parseID(nodeID)
	if err != nil {
		c.notifier.Show("invalid node id")
		return
	}
	if _, err := c.api.UpdateDevicePosition(ctx, id, x, y); err != nil {
		c.notifier.Show("saving position failed: " + err.Error())
	}
}

// SetStatus patches only the status field of the current selection and
// mutates the local copy of that one field after the server accepts it.
func (c *Controller) SetStatus(ctx context.Context, status string) error {
	sel := c.Selection()
	if sel.Kind == SelectNone {
		return nil
	}
	id, err := parseID(sel.ID)
	if err != nil {
		return err
	}

	switch sel.Kind {
	case SelectNode:
		_, err = c.api.UpdateDevice(ctx, id, &models.DeviceUpdate{Status: &status})
	case SelectEdge:
		_, err = c.api.UpdateLink(ctx, id, &models.LinkUpdate{Status: &status})
	}
	if err != nil {
		c.notifier.Show(err.Error())
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch sel.Kind {
	case SelectNode:
		for i := range c.nodes {
			if c.nodes[i].ID == sel.ID {
				c.nodes[i].Data.Status = status
			}
		}
	case SelectEdge:
		for i := range c.edges {
			if c.edges[i].ID == sel.ID {
				c.edges[i].Data.Status = status
			}
		}
	}
	return nil
}

// CreateDevice creates a device and reloads the graph. When the payload
// carries no explicit position and a viewport is given, the device is
// placed at the current view center.
func (c *Controller) CreateDevice(ctx context.Context, in models.DeviceCreate, vp *Viewport) error {
	if vp != nil && in.X == 0 && in.Y == 0 {
		in.X, in.Y = vp.Center()
	}
	if _, err := c.api.CreateDevice(ctx, &in); err != nil {
		c.notifier.Show(err.Error())
		return err
	}
	return c.Reload(ctx)
}

// ConnectDevices creates a link between two distinct devices and reloads
// the graph. Identical endpoints are rejected locally, before any call.
func (c *Controller) ConnectDevices(ctx context.Context, fromID, toID, fromHandle, toHandle string) error {
	if fromID == toID {
		err := fmt.Errorf("cannot connect a device to itself")
		c.notifier.Show(err.Error())
		return err
	}
	from, err := parseID(fromID)
	if err != nil {
		return err
	}
	to, err := parseID(toID)
	if err != nil {
		return err
	}
	in := models.LinkCreate{FromID: from, ToID: to, FromHandle: fromHandle, ToHandle: toHandle}
	if _, err := c.api.CreateLink(ctx, &in); err != nil {
		c.notifier.Show(err.Error())
		return err
	}
	return c.Reload(ctx)
}

// DeleteSelection deletes whichever single entity is selected and reloads
// the graph. Deleting a node cascades its links on the server side.
func (c *Controller) DeleteSelection(ctx context.Context) error {
	sel := c.Selection()
	if sel.Kind == SelectNone {
		return nil
	}
	id, err := parseID(sel.ID)
	if err != nil {
		return err
	}

	switch sel.Kind {
	case SelectNode:
		err = c.api.DeleteDevice(ctx, id)
	case SelectEdge:
		err = c.api.DeleteLink(ctx, id)
	}
	if err != nil {
		c.notifier.Show(err.Error())
		return err
	}

	c.mu.Lock()
	c.selection = Selection{}
	c.mu.Unlock()
	return c.Reload(ctx)
}

// AutoLayout recomputes every node position top-to-bottom and persists
// each one with its own concurrent position update. The batch completes
// only once all calls have settled; any failures surface as a single
// aggregate notification and the successful writes are not rolled back.
func (c *Controller) AutoLayout(ctx context.Context) error {
	c.mu.Lock()
	nodeIDs := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		nodeIDs[i] = n.ID
	}
	edges := make([]layout.Edge, len(c.edges))
	for i, e := range c.edges {
		edges[i] = layout.Edge{Source: e.Source, Target: e.Target}
	}
	c.mu.Unlock()

	if len(nodeIDs) == 0 {
		return nil
	}
	points := layout.TopToBottom(nodeIDs, edges)

	var (
		wg     sync.WaitGroup
		failMu sync.Mutex
		failed int
	)
	for _, nodeID := range nodeIDs {
		p, ok := points[nodeID]
		if !ok {
			continue
		}
		id, err := parseID(nodeID)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func(id uint, p layout.Point) {
			defer wg.Done()
			if _, err := c.api.UpdateDevicePosition(ctx, id, p.X, p.Y); err != nil {
				failMu.Lock()
				failed++
				failMu.Unlock()
			}
		}(id, p)
	}
	wg.Wait()

	if failed > 0 {
		c.notifier.Show(fmt.Sprintf("auto-layout: %d of %d position updates failed", failed, len(nodeIDs)))
	}
	if err := c.Reload(ctx); err != nil {
		return err
	}
	if c.RefitView != nil {
		c.RefitView()
	}
	if failed > 0 {
		return fmt.Errorf("auto-layout: %d position updates failed", failed)
	}
	return nil
}

// Search filters the in-memory node set with a case-insensitive substring
// match over name, ip, type and id. No server round trip; an empty query
// yields no results rather than all nodes.
func (c *Controller) Search(query string) []models.Node {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Node
	for _, n := range c.nodes {
		if strings.Contains(strings.ToLower(n.Data.Name), query) ||
			strings.Contains(strings.ToLower(n.Data.IP), query) ||
			strings.Contains(strings.ToLower(n.Data.Type), query) ||
			strings.Contains(strings.ToLower(n.ID), query) {
			out = append(out, n)
		}
	}
	return out
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
