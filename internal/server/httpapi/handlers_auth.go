package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		writeError(c, err)
		return
	}

	// sign the fresh user straight in, as the signup page expects
	pair, err := h.users.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *Handler) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	pair, err := h.users.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *Handler) Refresh(c *gin.Context) {
	var body refreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	pair, err := h.users.RefreshToken(c.Request.Context(), body.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Session resolves the bearer token into the user identity plus its profile
// row; the client session provider builds its augmented user from this.
func (h *Handler) Session(c *gin.Context) {
	userID := UserIDFromContext(c)

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		// a missing profile row is not fatal; the client falls back to
		// signup metadata and the default role
		profile = nil
	}

	resp := gin.H{"user_id": userID, "email": user.Email}
	if profile != nil {
		resp["profile"] = profile
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the submitted refresh token. The client clears its local
// session regardless of the outcome here.
func (h *Handler) Logout(c *gin.Context) {
	var body refreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if err := h.users.Logout(c.Request.Context(), body.RefreshToken); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateAdminUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	user, err := h.users.CreateAdmin(c.Request.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "admin user created", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}
