package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/villeh/netcanvas/internal/models"
)

// API exposes the topology repository over REST.
type API struct {
	store *Store
}

// NewAPI wraps a repository for route registration.
func NewAPI(store *Store) *API {
	return &API{store: store}
}

// RegisterRoutes wires up the REST API under /api on the given engine.
func (a *API) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", a.handleHealth)
	api.GET("/topology", a.handleTopology)

	api.GET("/devices", a.handleDeviceList)
	api.GET("/devices/:id", a.handleDeviceGet)
	api.POST("/devices", a.handleDeviceCreate)
	api.PATCH("/devices/:id", a.handleDeviceUpdate)
	api.PATCH("/devices/:id/position", a.handleDevicePosition)
	api.DELETE("/devices/:id", a.handleDeviceDelete)

	api.GET("/links", a.handleLinkList)
	api.POST("/links", a.handleLinkCreate)
	api.PATCH("/links/:id", a.handleLinkUpdate)
	api.DELETE("/links/:id", a.handleLinkDelete)
}

// CORSMiddleware allows the listed origins, or any origin when the list is
// empty. Preflight requests are answered with 204.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		switch origin := c.GetHeader("Origin"); {
		case len(allowed) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "db": a.store.Ping()})
}

func (a *API) handleTopology(c *gin.Context) {
	graph, err := a.store.Topology()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func (a *API) handleDeviceList(c *gin.Context) {
	devices, err := a.store.Devices()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (a *API) handleDeviceGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dev, err := a.store.Device(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dev)
}

func (a *API) handleDeviceCreate(c *gin.Context) {
	var in models.DeviceCreate
	if !bindJSON(c, &in) {
		return
	}
	if verr := CheckDeviceCreate(&in); verr != nil {
		renderError(c, verr)
		return
	}
	dev, err := a.store.CreateDevice(&in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dev)
}

func (a *API) handleDeviceUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.DeviceUpdate
	if !bindJSON(c, &in) {
		return
	}
	if verr := CheckDeviceUpdate(&in); verr != nil {
		renderError(c, verr)
		return
	}
	dev, err := a.store.UpdateDevice(id, &in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dev)
}

// handleDevicePosition is the one endpoint with a strict payload: exactly
// {x, y}, unknown fields rejected.
func (a *API) handleDevicePosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.PositionUpdate
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil && err != io.EOF {
		renderError(c, validationErrorf("body", "must contain exactly x and y"))
		return
	}
	if verr := CheckPositionUpdate(&in); verr != nil {
		renderError(c, verr)
		return
	}
	dev, err := a.store.UpdateDevicePosition(id, *in.X, *in.Y)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dev)
}

func (a *API) handleDeviceDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.store.DeleteDevice(id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) handleLinkList(c *gin.Context) {
	links, err := a.store.Links()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (a *API) handleLinkCreate(c *gin.Context) {
	var in models.LinkCreate
	if !bindJSON(c, &in) {
		return
	}
	if verr := CheckLinkCreate(&in); verr != nil {
		renderError(c, verr)
		return
	}
	link, err := a.store.CreateLink(&in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (a *API) handleLinkUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.LinkUpdate
	if !bindJSON(c, &in) {
		return
	}
	if verr := CheckLinkUpdate(&in); verr != nil {
		renderError(c, verr)
		return
	}
	link, err := a.store.UpdateLink(id, &in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (a *API) handleLinkDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.store.DeleteLink(id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// pathID parses the :id path segment; on failure it writes the 400 itself.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes a payload, ignoring unknown fields. On failure it
// writes the 400 itself.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON body"})
		return false
	}
	return true
}

// renderError maps domain outcomes onto HTTP statuses. Anything outside
// the taxonomy is logged server-side and reported as a generic 500.
func renderError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidReference.Error()})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": ErrConflict.Error()})
	default:
		log.Printf("[api] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
