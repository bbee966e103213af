package http

import (
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/project"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfigDefaults returns the config a new builder starts from
func (h *Handlers) ConfigDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, project.Defaults())
}

// DecodeFragment applies a navigation fragment onto the defaults
func (h *Handlers) DecodeFragment(c *gin.Context) {
	var req types.FragmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, project.ParseFragment(req.Fragment, project.Defaults()))
}

// ListHistory returns the recent projects, most recent first
func (h *Handlers) ListHistory(c *gin.Context) {
	entries, err := h.history.List()
	if err != nil {
		h.logger.Error("Failed to read history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Preview describes how the phone frame embeds the target URL. Feature
// toggles default to the project defaults and can be overridden with the
// camera, mic and location query flags.
func (h *Handlers) Preview(c *gin.Context) {
	target := project.NormalizeURL(c.Query("url"))
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter required"})
		return
	}

	features := project.Defaults().Features
	features.CameraAccess = queryBool(c, "camera", features.CameraAccess)
	features.MicAccess = queryBool(c, "mic", features.MicAccess)
	features.LocationAccess = queryBool(c, "location", features.LocationAccess)

	body := gin.H{
		"url":            target,
		"feature_policy": project.FeaturePolicy(features),
		"sandbox":        project.SandboxAttributes,
	}

	if h.prober != nil {
		site, err := h.prober.Probe(c.Request.Context(), target)
		if err != nil {
			body["probe_error"] = err.Error()
		} else {
			body["site"] = site
		}
	}

	c.JSON(http.StatusOK, body)
}

func queryBool(c *gin.Context, key string, fallback bool) bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
