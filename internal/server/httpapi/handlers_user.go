package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackvers/trackvers/internal/server/models"
)

func (h *Handler) ListFavorites(c *gin.Context) {
	ids, err := h.favorites.ListIDs(c.Request.Context(), UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"software_ids": ids})
}

func (h *Handler) AddFavorite(c *gin.Context) {
	if err := h.favorites.Add(c.Request.Context(), UserIDFromContext(c), c.Param("softwareID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.favorites.Remove(c.Request.Context(), UserIDFromContext(c), c.Param("softwareID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var body struct {
		FullName      string `json:"full_name"`
		NotifyEmail   bool   `json:"notify_email"`
		NotifyBrowser bool   `json:"notify_browser"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if err := h.profiles.Update(c.Request.Context(), UserIDFromContext(c), body.FullName, body.NotifyEmail, body.NotifyBrowser); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) SubscribePush(c *gin.Context) {
	var body struct {
		Endpoint string `json:"endpoint"`
		P256DH   string `json:"p256dh"`
		Auth     string `json:"auth"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	sub := &models.PushSubscription{
		UserID:   UserIDFromContext(c),
		Endpoint: body.Endpoint,
		P256DH:   body.P256DH,
		Auth:     body.Auth,
	}
	if err := h.push.Subscribe(c.Request.Context(), sub); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UnsubscribePush(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	if err := h.push.Unsubscribe(c.Request.Context(), UserIDFromContext(c), endpoint); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
