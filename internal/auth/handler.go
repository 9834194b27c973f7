package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler serves the unauthenticated POST /auth/verify exchange.
type Handler struct {
	verifier TokenVerifier
	admins   AdminChecker
}

func NewHandler(verifier TokenVerifier, admins AdminChecker) *Handler {
	return &Handler{verifier: verifier, admins: admins}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/verify", h.verify)
}

type verifyReq struct {
	Token string `json:"token"`
}

func (h *Handler) verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	decoded, err := h.verifier.VerifyIDToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	isAdmin, err := h.admins.IsAdmin(c.Request.Context(), decoded.UID)
	if err != nil {
		log.Error().Err(err).Str("uid", decoded.UID).Msg("admin lookup failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
		return
	}

	email, _ := decoded.Claims["email"].(string)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    Principal{UID: decoded.UID, Email: email},
	})
}
