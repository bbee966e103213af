package http

import (
	"errors"
	"net/http"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/project"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// CreateWorkspace opens a new builder workspace
func (h *Handlers) CreateWorkspace(c *gin.Context) {
	ws, err := h.workspaces.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ws.Info())
}

// ListWorkspaces lists all open workspaces
func (h *Handlers) ListWorkspaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"workspaces": h.workspaces.List()})
}

// GetWorkspace returns a workspace with its current build snapshot
func (h *Handlers) GetWorkspace(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ws.Info())
}

// DeleteWorkspace cancels the workspace build and removes it
func (h *Handlers) DeleteWorkspace(c *gin.Context) {
	id := c.Param("id")
	if err := h.workspaces.Delete(id); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// StartBuild starts a simulated build. A missing name or URL, or a build
// already in progress, is not an error: the response reports started false.
func (h *Handlers) StartBuild(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	var cfg types.ProjectConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateProject(cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, started := ws.Orchestrator.Start(c.Request.Context(), project.Normalize(cfg))

	status := http.StatusOK
	if started {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"started": started, "build": snap})
}

// ResetBuild returns a completed builder to idle
func (h *Handlers) ResetBuild(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	reset := ws.Orchestrator.Reset()
	c.JSON(http.StatusOK, gin.H{"reset": reset, "build": ws.Orchestrator.Snapshot()})
}

// CancelBuild stops a running build
func (h *Handlers) CancelBuild(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	cancelled := ws.Orchestrator.Cancel()
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled, "build": ws.Orchestrator.Snapshot()})
}
