package http

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/domain/artifact"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// HeaderChecksum carries the SHA-256 of the uncompressed artifact
const HeaderChecksum = "X-Checksum-SHA256"

// DownloadArtifact streams the placeholder binary of a completed build.
// The body is gzip encoded when the client accepts it.
func (h *Handlers) DownloadArtifact(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	kind, err := artifact.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := ws.Orchestrator.Snapshot()
	if !snap.Completed {
		c.JSON(http.StatusConflict, gin.H{"error": "build not completed", "state": snap.State})
		return
	}

	art, err := h.artifacts.Generate(snap.Config, kind)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	c.Header("Vary", "Accept-Encoding")
	c.Header(HeaderChecksum, h.hasher.Hash(art.Bytes))

	encoding := "identity"
	if acceptsGzip(c.GetHeader("Accept-Encoding")) {
		encoding = "gzip"
	}
	if h.metrics != nil {
		h.metrics.RecordArtifact(string(kind), encoding, len(art.Bytes))
	}

	if encoding != "gzip" {
		c.Data(http.StatusOK, art.MimeType, art.Bytes)
		return
	}

	c.Header("Content-Type", art.MimeType)
	c.Header("Content-Encoding", "gzip")
	c.Status(http.StatusOK)

	gz, _ := gzip.NewWriterLevel(c.Writer, gzip.BestSpeed)
	if _, err := gz.Write(art.Bytes); err != nil {
		h.logger.Warn("Artifact download interrupted", zap.String("filename", art.Filename), zap.Error(err))
		return
	}
	if err := gz.Close(); err != nil {
		h.logger.Warn("Artifact download interrupted", zap.String("filename", art.Filename), zap.Error(err))
	}
}

// acceptsGzip reports whether an Accept-Encoding header permits gzip
func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "gzip") {
			continue
		}
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				return false
			}
		}
		return true
	}
	return false
}
