package controllers

import (
	"errors"

	"shopsave-backend/database"
	"shopsave-backend/middleware"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetBasket(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var items []models.BasketItem
	if err := database.DB.
		Preload("Product").
		Preload("Product.Brand").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch basket"})
	}

	return c.JSON(items)
}

type BasketInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddToBasket inserts or bumps the quantity for the (user, product) pair.
func AddToBasket(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input BasketInput
	if err := c.BodyParser(&input); err != nil || input.ProductID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "product_id is required"})
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	var product models.MasterProduct
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	var item models.BasketItem
	err := database.DB.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.BasketItem{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to add to basket"})
		}
		return c.Status(201).JSON(item)
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check basket"})
	}

	item.Quantity += input.Quantity
	if err := database.DB.Save(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update basket"})
	}

	return c.JSON(item)
}

func UpdateBasketItem(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var item models.BasketItem
	if err := database.DB.Where("user_id = ?", userID).First(&item, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Basket item not found"})
	}

	var input BasketInput
	if err := c.BodyParser(&input); err != nil || input.Quantity < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Quantity must be at least 1"})
	}

	item.Quantity = input.Quantity
	if err := database.DB.Save(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update basket item"})
	}

	return c.JSON(item)
}

func RemoveFromBasket(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var item models.BasketItem
	if err := database.DB.Where("user_id = ?", userID).First(&item, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Basket item not found"})
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove basket item"})
	}

	return c.JSON(fiber.Map{"message": "Basket item removed"})
}
