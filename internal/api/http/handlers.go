package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/artifact"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/icon"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/preview"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

const Version = "2.5.0"

// HistoryLister reads the recent project list
type HistoryLister interface {
	List() ([]types.HistoryEntry, error)
}

// Prober fetches target site metadata
type Prober interface {
	Probe(ctx context.Context, target string) (preview.Metadata, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	workspaces *workspace.Manager
	artifacts  *artifact.Generator
	icons      icon.Service
	history    HistoryLister
	prober     Prober // nil when probing is disabled
	hasher     *utils.Hasher
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	workspaces *workspace.Manager,
	artifacts *artifact.Generator,
	icons icon.Service,
	history HistoryLister,
	prober Prober,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		workspaces: workspaces,
		artifacts:  artifacts,
		icons:      icons,
		history:    history,
		prober:     prober,
		hasher:     utils.DefaultHasher(),
		metrics:    metrics,
		logger:     logger,
	}
}

// Register mounts every route on router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	router.GET("/config/defaults", h.ConfigDefaults)
	router.POST("/config/fragment", h.DecodeFragment)
	router.GET("/history", h.ListHistory)
	router.GET("/preview", h.Preview)

	icons := router.Group("/icons")
	icons.POST("/generate", h.GenerateIcon)
	icons.POST("/edit", h.EditIcon)
	icons.POST("/upload", h.UploadIcon)

	ws := router.Group("/workspaces")
	ws.POST("", h.CreateWorkspace)
	ws.GET("", h.ListWorkspaces)
	ws.GET("/:id", h.GetWorkspace)
	ws.DELETE("/:id", h.DeleteWorkspace)
	ws.POST("/:id/build", h.StartBuild)
	ws.POST("/:id/reset", h.ResetBuild)
	ws.POST("/:id/cancel", h.CancelBuild)
	ws.GET("/:id/artifacts/:kind", h.DownloadArtifact)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "AppCoPro Native Engine",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":     "healthy",
		"workspaces": h.workspaces.Count(),
		"preview":    gin.H{"enabled": h.prober != nil},
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.GetSnapshot()
	}
	c.JSON(http.StatusOK, body)
}

// workspace resolves the :id param, answering 404 when it is unknown
func (h *Handlers) workspace(c *gin.Context) (*workspace.Workspace, bool) {
	ws, err := h.workspaces.Get(c.Param("id"))
	if errors.Is(err, workspace.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return ws, true
}
