package controllers

import (
	"shopsave-backend/database"
	"shopsave-backend/middleware"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetPriceAlerts(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var userAlerts []models.PriceAlert
	if err := database.DB.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&userAlerts).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch price alerts"})
	}

	return c.JSON(userAlerts)
}

type PriceAlertInput struct {
	ProductID   uint    `json:"product_id"`
	TargetPrice float64 `json:"target_price"`
}

func CreatePriceAlert(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input PriceAlertInput
	if err := c.BodyParser(&input); err != nil || input.ProductID == 0 || input.TargetPrice <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "product_id and a positive target_price are required"})
	}

	var product models.MasterProduct
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	// One active alert per product per user; a new target replaces it.
	var existing models.PriceAlert
	if err := database.DB.
		Where("user_id = ? AND product_id = ? AND is_active = ?", userID, input.ProductID, true).
		First(&existing).Error; err == nil {
		existing.TargetPrice = input.TargetPrice
		if err := database.DB.Save(&existing).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update price alert"})
		}
		return c.JSON(existing)
	}

	alert := models.PriceAlert{
		UserID:      userID,
		ProductID:   input.ProductID,
		TargetPrice: input.TargetPrice,
		IsActive:    true,
	}
	if err := database.DB.Create(&alert).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create price alert"})
	}

	return c.Status(201).JSON(alert)
}

func DeletePriceAlert(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var alert models.PriceAlert
	if err := database.DB.Where("user_id = ?", userID).First(&alert, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price alert not found"})
	}

	if err := database.DB.Delete(&alert).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete price alert"})
	}

	return c.JSON(fiber.Map{"message": "Price alert deleted"})
}

func GetNotifications(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	return c.JSON(notifications)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var notification models.Notification
	if err := database.DB.Where("user_id = ?", userID).First(&notification, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Notification not found"})
	}

	notification.IsRead = true
	if err := database.DB.Save(&notification).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update notification"})
	}

	return c.JSON(notification)
}
