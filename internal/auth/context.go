package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUID   = "admin_uid"
	CtxEmail = "admin_email"
)

// Principal is the authenticated admin attached to the request context.
type Principal struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// PrincipalFrom extracts the admin principal set by Gate.
func PrincipalFrom(c *gin.Context) Principal {
	return Principal{
		UID:   strings.TrimSpace(c.GetString(CtxUID)),
		Email: strings.TrimSpace(c.GetString(CtxEmail)),
	}
}
