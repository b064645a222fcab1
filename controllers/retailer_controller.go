package controllers

import (
	"shopsave-backend/database"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetRetailers(c *fiber.Ctx) error {
	var retailers []models.Retailer
	if err := database.DB.Order("name ASC").Find(&retailers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch retailers"})
	}
	return c.JSON(retailers)
}

func GetRetailerByID(c *fiber.Ctx) error {
	var retailer models.Retailer
	if err := database.DB.First(&retailer, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Retailer not found"})
	}
	return c.JSON(retailer)
}

type RetailerInput struct {
	Name    string `json:"name"`
	SiteURL string `json:"site_url"`
}

func CreateRetailer(c *fiber.Ctx) error {
	var input RetailerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}
	if input.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	retailer := models.Retailer{
		Name:    input.Name,
		SiteURL: input.SiteURL,
	}
	if err := database.DB.Create(&retailer).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create retailer"})
	}

	return c.Status(201).JSON(retailer)
}

func UpdateRetailer(c *fiber.Ctx) error {
	var retailer models.Retailer
	if err := database.DB.First(&retailer, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Retailer not found"})
	}

	var input RetailerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}

	retailer.Name = input.Name
	retailer.SiteURL = input.SiteURL

	if err := database.DB.Save(&retailer).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update retailer"})
	}

	return c.JSON(retailer)
}

func DeleteRetailer(c *fiber.Ctx) error {
	var retailer models.Retailer
	if err := database.DB.First(&retailer, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Retailer not found"})
	}

	var offerCount int64
	database.DB.Model(&models.RetailerCurrentPricing{}).Where("retailer_id = ?", retailer.ID).Count(&offerCount)
	if offerCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Retailer still has current offers"})
	}

	if err := database.DB.Delete(&retailer).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete retailer"})
	}

	return c.JSON(fiber.Map{"message": "Retailer deleted successfully"})
}
