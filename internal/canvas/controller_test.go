package canvas

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villeh/netcanvas/internal/client"
	"github.com/villeh/netcanvas/internal/config"
	"github.com/villeh/netcanvas/internal/models"
	"github.com/villeh/netcanvas/internal/server"
)

// newTestStack runs the real API over an in-memory store and returns a
// controller plus the raw client for server-side assertions.
func newTestStack(t *testing.T) (*Controller, *client.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := server.Open(&config.Config{DBPath: ":memory:", DBDriver: "sqlite"})
	require.NoError(t, err)
	engine := gin.New()
	server.NewAPI(server.NewStore(db)).RegisterRoutes(engine)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	api := client.New(srv.URL + "/api")
	return New(api, NewNotifier(time.Minute, nil)), api
}

func seedDevice(t *testing.T, api *client.Client, name, typ string) *models.Device {
	t.Helper()
	dev, err := api.CreateDevice(context.Background(), &models.DeviceCreate{Name: name, Type: typ})
	require.NoError(t, err)
	return dev
}

func TestSelectionStateMachine(t *testing.T) {
	c := New(nil, NewNotifier(time.Minute, nil))

	assert.Equal(t, SelectNone, c.Selection().Kind)

	c.SelectionChanged([]string{"1"}, nil)
	assert.Equal(t, Selection{Kind: SelectNode, ID: "1"}, c.Selection())

	// Selecting an edge clears the node selection.
	c.SelectionChanged(nil, []string{"7"})
	assert.Equal(t, Selection{Kind: SelectEdge, ID: "7"}, c.Selection())

	// With both reported, the first node wins.
	c.SelectionChanged([]string{"2", "3"}, []string{"7"})
	assert.Equal(t, Selection{Kind: SelectNode, ID: "2"}, c.Selection())

	c.SelectionChanged(nil, nil)
	assert.Equal(t, SelectNone, c.Selection().Kind)
}

func TestSearch(t *testing.T) {
	c := New(nil, NewNotifier(time.Minute, nil))
	c.nodes = []models.Node{
		{ID: "1", Data: models.NodeData{Name: "Core-SW1", Type: "switch", IP: "10.0.0.1"}},
		{ID: "2", Data: models.NodeData{Name: "Edge-R1", Type: "router", IP: "192.168.1.1"}},
		{ID: "42", Data: models.NodeData{Name: "AP-lobby", Type: "ap"}},
	}

	assert.Nil(t, c.Search(""))
	assert.Nil(t, c.Search("   "))

	assert.Len(t, c.Search("core"), 1)     // name, case-insensitive
	assert.Len(t, c.Search("10.0."), 1)    // ip
	assert.Len(t, c.Search("ROUTER"), 1)   // type
	assert.Len(t, c.Search("42"), 1)       // id
	assert.Len(t, c.Search("o"), 3)        // substring across name, type fields
	assert.Empty(t, c.Search("mainframe"))
}

func TestConnectRejectsSelfLinkLocally(t *testing.T) {
	// No client wired up: the guard must fire before any call is made.
	n := NewNotifier(time.Minute, nil)
	c := New(nil, n)
	err := c.ConnectDevices(context.Background(), "5", "5", "", "")
	require.Error(t, err)
	assert.NotEmpty(t, n.Current())
}

func TestViewportCenter(t *testing.T) {
	vp := Viewport{X: -100, Y: 50, Zoom: 2, Width: 800, Height: 600}
	x, y := vp.Center()
	assert.Equal(t, 250.0, x) // (800/2 - (-100)) / 2
	assert.Equal(t, 125.0, y) // (600/2 - 50) / 2

	// Zoom 0 must not divide by zero.
	x, y = Viewport{Width: 400, Height: 200}.Center()
	assert.Equal(t, 200.0, x)
	assert.Equal(t, 100.0, y)
}

func TestHandleKey(t *testing.T) {
	c := New(nil, NewNotifier(time.Minute, nil))

	assert.Equal(t, KeyNone, c.HandleKey("Delete", false)) // nothing selected
	c.SelectionChanged([]string{"1"}, nil)
	assert.Equal(t, KeyConfirmDelete, c.HandleKey("Delete", false))
	assert.Equal(t, KeyConfirmDelete, c.HandleKey("Backspace", false))
	assert.Equal(t, KeyFocusSearch, c.HandleKey("k", true))
	assert.Equal(t, KeyNone, c.HandleKey("k", false))
	assert.Equal(t, KeyNone, c.HandleKey("x", true))
}

func TestNotifierRearms(t *testing.T) {
	n := NewNotifier(60*time.Millisecond, nil)

	n.Show("first")
	time.Sleep(40 * time.Millisecond)
	n.Show("second") // cancels the first timer, re-arms
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, "second", n.Current()) // first timer would have fired by now

	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, n.Current()) // auto-dismissed
}

func TestReloadAndCreateDevice(t *testing.T) {
	ctrl, _ := newTestStack(t)
	ctx := context.Background()

	require.NoError(t, ctrl.Reload(ctx))
	assert.Empty(t, ctrl.Nodes())

	vp := &Viewport{Zoom: 1, Width: 1000, Height: 500}
	require.NoError(t, ctrl.CreateDevice(ctx, models.DeviceCreate{Name: "SW1", Type: "switch"}, vp))

	nodes := ctrl.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, 500.0, nodes[0].Position.X)
	assert.Equal(t, 250.0, nodes[0].Position.Y)
}

func TestDragEndPersistsPosition(t *testing.T) {
	ctrl, api := newTestStack(t)
	ctx := context.Background()
	dev := seedDevice(t, api, "SW1", "switch")
	require.NoError(t, ctrl.Reload(ctx))

	nodeID := ctrl.Nodes()[0].ID
	ctrl.DragEnd(ctx, nodeID, 120, 340)

	got, err := api.Device(ctx, dev.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.X)
	assert.Equal(t, 340.0, got.Y)

	// Local copy reflects the drag too.
	assert.Equal(t, models.Position{X: 120, Y: 340}, ctrl.Nodes()[0].Position)
}

func TestSetStatusIsNarrow(t *testing.T) {
	ctrl, api := newTestStack(t)
	ctx := context.Background()
	dev := seedDevice(t, api, "SW1", "switch")
	require.NoError(t, ctrl.Reload(ctx))

	ctrl.SelectionChanged([]string{ctrl.Nodes()[0].ID}, nil)
	require.NoError(t, ctrl.SetStatus(ctx, "down"))

	// Local state mutated on the one field only, after server acceptance.
	assert.Equal(t, "down", ctrl.Nodes()[0].Data.Status)

	got, err := api.Device(ctx, dev.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDown, got.Status)
	assert.Equal(t, "SW1", got.Name)
}

func TestDeleteSelectionCascades(t *testing.T) {
	ctrl, api := newTestStack(t)
	ctx := context.Background()
	a := seedDevice(t, api, "SW1", "switch")
	b := seedDevice(t, api, "R1", "router")
	_, err := api.CreateLink(ctx, &models.LinkCreate{FromID: a.ID, ToID: b.ID})
	require.NoError(t, err)
	require.NoError(t, ctrl.Reload(ctx))
	require.Len(t, ctrl.Edges(), 1)

	ctrl.SelectionChanged([]string{ctrl.Nodes()[0].ID}, nil)
	require.NoError(t, ctrl.DeleteSelection(ctx))

	assert.Len(t, ctrl.Nodes(), 1)
	assert.Empty(t, ctrl.Edges())
	assert.Equal(t, SelectNone, ctrl.Selection().Kind)
}

func TestAutoLayoutPersistsPositions(t *testing.T) {
	ctrl, api := newTestStack(t)
	ctx := context.Background()
	a := seedDevice(t, api, "core", "router")
	b := seedDevice(t, api, "floor1", "switch")
	c := seedDevice(t, api, "floor2", "switch")
	for _, to := range []uint{b.ID, c.ID} {
		_, err := api.CreateLink(ctx, &models.LinkCreate{FromID: a.ID, ToID: to})
		require.NoError(t, err)
	}
	require.NoError(t, ctrl.Reload(ctx))

	refitted := false
	ctrl.RefitView = func() { refitted = true }
	require.NoError(t, ctrl.AutoLayout(ctx))
	assert.True(t, refitted)

	// Positions were persisted: the root sits above both children.
	root, err := api.Device(ctx, a.ID)
	require.NoError(t, err)
	for _, id := range []uint{b.ID, c.ID} {
		child, err := api.Device(ctx, id)
		require.NoError(t, err)
		assert.Greater(t, child.Y, root.Y)
	}
}
