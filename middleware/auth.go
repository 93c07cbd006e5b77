package middleware

import (
	"context"
	"strings"
	"time"

	"studytrack_go/config"
	"studytrack_go/database"
	"studytrack_go/models"
	"studytrack_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Token types carried in claims; refresh tokens are never accepted as
// request credentials.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const blacklistKeyPrefix = "blacklist:jwt:"

type Claims struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateTokenPair creates the signed access and refresh JWTs for a user.
func GenerateTokenPair(user *models.User) (access string, refresh string, err error) {
	access, err = generateToken(user, TokenTypeAccess, config.AppConfig.JWTExpiresIn)
	if err != nil {
		return "", "", err
	}
	refresh, err = generateToken(user, TokenTypeRefresh, config.AppConfig.JWTRefreshExpiresIn)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ExtractBearerToken pulls the raw token out of the Authorization header.
// Empty string when the header is missing or malformed.
func ExtractBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}
	return tokenString
}

// BlacklistToken stores a token in the Redis blacklist until it would have
// expired anyway. No-op when Redis is unavailable.
func BlacklistToken(tokenString string, ttl time.Duration) error {
	rc := database.GetRedisClient()
	if rc == nil {
		return nil
	}
	return rc.Set(context.Background(), blacklistKeyPrefix+tokenString, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token was invalidated by logout.
func IsTokenBlacklisted(tokenString string) bool {
	rc := database.GetRedisClient()
	if rc == nil {
		return false
	}
	n, err := rc.Exists(context.Background(), blacklistKeyPrefix+tokenString).Result()
	return err == nil && n > 0
}

// JWTMiddleware validates bearer tokens on protected routes
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ExtractBearerToken(c)
		if tokenString == "" {
			return utils.Fail(c, fiber.StatusUnauthorized, "Missing or invalid authorization header")
		}

		if IsTokenBlacklisted(tokenString) {
			return utils.Fail(c, fiber.StatusUnauthorized, "Token has been revoked")
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token")
		}

		if claims.TokenType != TokenTypeAccess {
			return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token")
		}

		// Verify user still exists and is active
		var user models.User
		if err := database.DB.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
			return utils.Fail(c, fiber.StatusUnauthorized, "User not found or inactive")
		}

		// Store user info in context
		c.Locals("user", &user)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RequireRole middleware checks if user has required role
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*Claims)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, "Missing user claims")
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return utils.Fail(c, fiber.StatusForbidden, "Insufficient permissions")
	}
}

// GetCurrentUser returns the current authenticated user
func GetCurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found in context")
	}
	return user, nil
}

// GetCurrentClaims returns the current JWT claims
func GetCurrentClaims(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals("claims").(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Claims not found in context")
	}
	return claims, nil
}
