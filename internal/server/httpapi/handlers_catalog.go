package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trackvers/trackvers/internal/server/models"
)

func (h *Handler) ListSoftware(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []*models.Software{}
	}
	c.JSON(http.StatusOK, gin.H{"software": items})
}

func (h *Handler) CreateSoftware(c *gin.Context) {
	var item models.Software
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if err := h.catalog.Create(c.Request.Context(), &item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateSoftware(c *gin.Context) {
	var item models.Software
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	item.ID = c.Param("id")

	if err := h.catalog.Update(c.Request.Context(), &item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteSoftware(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LogoUploadURL issues a presigned PUT URL the admin client uploads logo
// bytes to.
func (h *Handler) LogoUploadURL(c *gin.Context) {
	url, err := h.catalog.LogoUploadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload_url": url})
}

func (h *Handler) ListEOLDates(c *gin.Context) {
	raw := c.Query("software_ids")
	var ids []string
	if raw != "" {
		ids = strings.Split(raw, ",")
	}

	rows, err := h.eol.ListBySoftwareIDs(c.Request.Context(), ids)
	if err != nil {
		writeError(c, err)
		return
	}
	if rows == nil {
		rows = []*models.EOLDates{}
	}
	c.JSON(http.StatusOK, gin.H{"eol_dates": rows})
}

// ClientConfig exposes the public settings a browser client needs, currently
// the VAPID application server key for push subscriptions.
func (h *Handler) ClientConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vapid_public_key": h.cfg.VAPIDPublicKey})
}

func (h *Handler) CheckVersions(c *gin.Context) {
	var body struct {
		SoftwareIDs []string `json:"softwareIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if err := h.checker.CheckAll(c.Request.Context(), body.SoftwareIDs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked": len(body.SoftwareIDs)})
}
