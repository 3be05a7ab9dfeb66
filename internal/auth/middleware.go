package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUser   = "auth_user"
	ContextKeyUserID = "auth_user_id"
)

// Middleware authenticates API requests by token.
type Middleware struct {
	service        *Service
	log            logrus.FieldLogger
	publicPaths    map[string]bool
	publicPrefixes []string
}

func NewMiddleware(service *Service, log logrus.FieldLogger) *Middleware {
	return &Middleware{
		service: service,
		log:     log,
		publicPaths: map[string]bool{
			"/health": true,
			"/ping":   true,
		},
		publicPrefixes: []string{"/media/"},
	}
}

// Handler returns a Gin middleware that accepts "Authorization: Token <t>" or
// "Authorization: Bearer <t>" and rejects everything else on non-public paths.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		user, err := m.authenticate(c)
		if err != nil {
			if !errors.Is(err, ErrInvalidToken) {
				m.log.WithError(err).Error("token lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyUserID, user.ID)
		c.Next()
	}
}

func (m *Middleware) authenticate(c *gin.Context) (*entities.User, error) {
	authHeader := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || (!strings.EqualFold(scheme, "token") && !strings.EqualFold(scheme, "bearer")) {
		return nil, ErrInvalidToken
	}
	return m.service.ValidateToken(strings.TrimSpace(token))
}

func (m *Middleware) isPublicPath(path string) bool {
	if m.publicPaths[path] {
		return true
	}
	for _, prefix := range m.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// GetUser retrieves the authenticated learner from the context.
func GetUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// GetUserID retrieves the authenticated learner's ID, 0 when unauthenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}
