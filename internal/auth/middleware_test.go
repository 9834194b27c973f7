package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	tok, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return tok, nil
}

type fakeAdmins struct {
	admins map[string]bool
	err    error
}

func (f *fakeAdmins) IsAdmin(ctx context.Context, uid string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[uid], nil
}

func adminToken(uid, email string) *fbauth.Token {
	return &fbauth.Token{UID: uid, Claims: map[string]interface{}{"email": email}}
}

func gatedRouter(verifier TokenVerifier, admins AdminChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("", Gate(verifier, admins))
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, PrincipalFrom(c))
	})
	return r
}

func TestGate(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*fbauth.Token{
		"good-admin": adminToken("admin-1", "admin@example.com"),
		"good-user":  adminToken("user-1", "user@example.com"),
	}}
	admins := &fakeAdmins{admins: map[string]bool{"admin-1": true}}
	router := gatedRouter(verifier, admins)

	t.Run("no token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/whoami", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "No token provided")
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "good-admin")
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "No token provided")
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid or expired token")
	})

	t.Run("valid token without admin record", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer good-user")
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "Admin privileges required")
	})

	t.Run("admin passes and principal is attached", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer good-admin")
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var p Principal
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		assert.Equal(t, "admin-1", p.UID)
		assert.Equal(t, "admin@example.com", p.Email)
	})
}

func TestGateAdminLookupFailure(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*fbauth.Token{
		"good-admin": adminToken("admin-1", "admin@example.com"),
	}}
	admins := &fakeAdmins{err: errors.New("backend down")}
	router := gatedRouter(verifier, admins)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-admin")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*fbauth.Token{
		"good-admin": adminToken("admin-1", "admin@example.com"),
		"good-user":  adminToken("user-1", "user@example.com"),
	}}
	admins := &fakeAdmins{admins: map[string]bool{"admin-1": true}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(verifier, admins).Register(router.Group("/auth"))

	post := func(body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/auth/verify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("missing token", func(t *testing.T) {
		rr := post(`{}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "No token provided")
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := post(`{"token":"bogus"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non-admin", func(t *testing.T) {
		rr := post(`{"token":"good-user"}`)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin", func(t *testing.T) {
		rr := post(`{"token":"good-admin"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success bool      `json:"success"`
			User    Principal `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "admin-1", resp.User.UID)
		assert.Equal(t, "admin@example.com", resp.User.Email)
	})
}
