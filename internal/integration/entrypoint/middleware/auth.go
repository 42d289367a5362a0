// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/application/adapter"
	domainerror "github.com/cepet-deal/backend/internal/domain/error"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// DealerIDKey is the context key for the authenticated dealer's ID.
	DealerIDKey ContextKey = "dealer_id"
	// DealerEmailKey is the context key for the authenticated dealer's email.
	DealerEmailKey ContextKey = "dealer_email"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(DealerIDKey), claims.DealerID)
		c.Set(string(DealerEmailKey), claims.Email)

		c.Next()
	}
}

// GetDealerIDFromContext extracts the dealer ID from the Gin context.
func GetDealerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	dealerID, exists := c.Get(string(DealerIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := dealerID.(uuid.UUID)
	return id, ok
}

// GetDealerEmailFromContext extracts the dealer email from the Gin context.
func GetDealerEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(DealerEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}
