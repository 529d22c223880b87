package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

const currentUserKey = "auth_current_user"

// AuthMiddleware validates bearer tokens and loads the current member.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthenticated("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// CurrentUser retrieves the authenticated member from the request context.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(currentUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}
