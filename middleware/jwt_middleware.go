package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// JWTSecret reads the signing secret from the environment on every use.
// Package init runs before main loads .env, so caching the value here would
// lock in the default before godotenv has a chance to supply the real one.
func JWTSecret() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	return "default-secret"
}

func jwtSecret() []byte {
	return []byte(JWTSecret())
}

func parseToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if _, ok := claims["user_id"]; !ok {
		return nil, fmt.Errorf("token is missing user_id")
	}
	return claims, nil
}

// JWTMiddleware requires a valid bearer token and injects user_id/username
// into the request context.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Bearer token required",
		})
	}

	claims, err := parseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	}

	c.Locals("user_id", uint(claims["user_id"].(float64)))
	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}

	return c.Next()
}

// OptionalJWT injects the caller identity when a valid token is present but
// lets anonymous requests through. Listing uses it: basket and alert
// decoration only applies when we know who is asking.
func OptionalJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Next()
	}

	claims, err := parseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		// Bad token on an optional route degrades to anonymous.
		return c.Next()
	}

	c.Locals("user_id", uint(claims["user_id"].(float64)))
	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}

	return c.Next()
}

// UserID reads the authenticated user id from the context, 0 when anonymous.
func UserID(c *fiber.Ctx) uint {
	if v, ok := c.Locals("user_id").(uint); ok {
		return v
	}
	return 0
}
