package security

import (
	"net/http"
	"strings"

	usermodel "EMProject/module/user/model"
	userservice "EMProject/module/user/service"
	jwtlib "EMProject/tools/security"

	"github.com/gin-gonic/gin"
)

// CtxUserKey is where the authenticated *usermodel.User lives in the
// gin context.
const CtxUserKey = "currentUser"

type Options struct {
	Jwt   jwtlib.Options
	Users userservice.Resolver

	// QueryTokenParam lets browser WebSocket clients pass the token as
	// a query parameter, since they cannot set headers on the upgrade.
	QueryTokenParam string
}

func extractToken(c *gin.Context, opts *Options) string {
	if authz := strings.TrimSpace(c.GetHeader("Authorization")); authz != "" {
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return strings.TrimSpace(authz[len("bearer "):])
		}
	}
	if opts.QueryTokenParam != "" {
		return strings.TrimSpace(c.Query(opts.QueryTokenParam))
	}
	return ""
}

func resolve(c *gin.Context, opts *Options) *usermodel.User {
	token := extractToken(c, opts)
	if token == "" {
		return nil
	}
	claims, err := jwtlib.Verify(opts.Jwt, token)
	if err != nil {
		return nil
	}
	u, err := opts.Users.ByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return u
}

// Middleware rejects unauthenticated requests with a structured 401.
func Middleware(opts *Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := resolve(c, opts)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// SoftMiddleware attaches the identity when present but never aborts.
// The WebSocket route uses it so the gateway itself can refuse the
// handshake after the upgrade, per its own state machine.
func SoftMiddleware(opts *Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := resolve(c, opts); u != nil {
			c.Set(CtxUserKey, u)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *usermodel.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*usermodel.User)
	return u
}
