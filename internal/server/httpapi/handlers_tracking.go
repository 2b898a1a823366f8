package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackvers/trackvers/internal/server/models"
)

func (h *Handler) ListTracked(c *gin.Context) {
	rows, err := h.tracking.ListByUser(c.Request.Context(), UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if rows == nil {
		rows = []*models.TrackedVersion{}
	}
	c.JSON(http.StatusOK, gin.H{"tracked": rows})
}

func (h *Handler) Track(c *gin.Context) {
	var body struct {
		SoftwareID     string `json:"software_id"`
		CurrentVersion string `json:"current_version"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	row, err := h.tracking.Track(c.Request.Context(), UserIDFromContext(c), body.SoftwareID, body.CurrentVersion)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *Handler) UpdateTrackedVersion(c *gin.Context) {
	var body struct {
		CurrentVersion string `json:"current_version"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if err := h.tracking.UpdateVersion(c.Request.Context(), c.Param("id"), UserIDFromContext(c), body.CurrentVersion); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Untrack(c *gin.Context) {
	if err := h.tracking.Untrack(c.Request.Context(), c.Param("id"), UserIDFromContext(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UntrackBySoftware removes the row for ?software_id=, the shape the catalog
// toggle uses (it knows the software, not the record id).
func (h *Handler) UntrackBySoftware(c *gin.Context) {
	softwareID := c.Query("software_id")
	if softwareID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "software_id is required"})
		return
	}

	if err := h.tracking.UntrackBySoftware(c.Request.Context(), UserIDFromContext(c), softwareID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
