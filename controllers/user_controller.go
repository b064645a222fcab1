package controllers

import (
	"log"
	"time"

	"shopsave-backend/database"
	"shopsave-backend/middleware"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *LoginResponsePayload `json:"data,omitempty"`
}

type LoginResponsePayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func Register(c *fiber.Ctx) error {
	var creds Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}
	if creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
	}

	var existing models.User
	if err := database.DB.Where("username = ?", creds.Username).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username already taken"})
	}

	user := models.User{
		Username: creds.Username,
		Email:    creds.Email,
	}
	if err := user.HashPassword(creds.Password); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered", "user": user.Username})
}

func Login(c *fiber.Ctx) error {
	var creds Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(LoginResponse{
			Success: false,
			Message: "Invalid request format",
		})
	}

	var user models.User
	result := database.DB.Where("username = ?", creds.Username).First(&user)
	if result.Error != nil {
		log.Println("❌ User not found:", creds.Username)
		return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{
			Success: false,
			Message: "Invalid username or password",
		})
	}

	if !user.CheckPassword(creds.Password) {
		log.Println("❌ Invalid password for user:", creds.Username)
		return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{
			Success: false,
			Message: "Invalid username or password",
		})
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      expirationTime.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.JWTSecret()))
	if err != nil {
		log.Printf("❌ Error generating JWT token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(LoginResponse{
			Success: false,
			Message: "Failed to generate login token",
		})
	}

	return c.JSON(LoginResponse{
		Success: true,
		Message: "Login successful",
		Data: &LoginResponsePayload{
			User:  &user,
			Token: tokenString,
		},
	})
}
