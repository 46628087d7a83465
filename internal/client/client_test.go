package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villeh/netcanvas/internal/config"
	"github.com/villeh/netcanvas/internal/models"
	"github.com/villeh/netcanvas/internal/server"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := server.Open(&config.Config{DBPath: ":memory:", DBDriver: "sqlite"})
	require.NoError(t, err)
	engine := gin.New()
	server.NewAPI(server.NewStore(db)).RegisterRoutes(engine)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/") // trailing slash is tolerated
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.OK)
	assert.True(t, h.DB)

	dev, err := c.CreateDevice(ctx, &models.DeviceCreate{Name: "SW1", Type: "switch"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUp, dev.Status)

	moved, err := c.UpdateDevicePosition(ctx, dev.ID, 12, 34)
	require.NoError(t, err)
	assert.Equal(t, 12.0, moved.X)

	graph, err := c.Topology(ctx)
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 1)

	require.NoError(t, c.DeleteDevice(ctx, dev.ID))
}

// Failures come back as single human-readable lines, never raw statuses.
func TestClientErrorMessages(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Device(ctx, 9999)
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())

	_, err = c.CreateDevice(ctx, &models.DeviceCreate{Name: "x", Type: "switch"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "name")

	_, err = c.CreateLink(ctx, &models.LinkCreate{FromID: 123, ToID: 456})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "existing device")
}
