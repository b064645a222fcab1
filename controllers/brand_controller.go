package controllers

import (
	"errors"

	"shopsave-backend/database"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetBrands(c *fiber.Ctx) error {
	query := database.DB.Order("name ASC")
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var brands []models.Brand
	if err := query.Find(&brands).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch brands"})
	}
	return c.JSON(brands)
}

func GetBrandByID(c *fiber.Ctx) error {
	var brand models.Brand
	if err := database.DB.First(&brand, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Brand not found"})
	}
	return c.JSON(brand)
}

type BrandInput struct {
	Name         string `json:"name"`
	PrivateLabel bool   `json:"private_label"`
	SupplierID   *uint  `json:"supplier_id"`
}

func CreateBrand(c *fiber.Ctx) error {
	var input BrandInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}
	if input.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	var existing models.Brand
	if err := database.DB.Where("LOWER(name) = LOWER(?)", input.Name).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Brand name already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"error": "Error checking existing brand"})
	}

	brand := models.Brand{
		Name:         input.Name,
		PrivateLabel: input.PrivateLabel,
		SupplierID:   input.SupplierID,
	}
	if err := database.DB.Create(&brand).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create brand"})
	}

	return c.Status(201).JSON(brand)
}

func UpdateBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := database.DB.First(&brand, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Brand not found"})
	}

	var input BrandInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}

	var existing models.Brand
	if err := database.DB.
		Where("LOWER(name) = LOWER(?) AND id != ?", input.Name, brand.ID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Brand name already in use"})
	}

	brand.Name = input.Name
	brand.PrivateLabel = input.PrivateLabel
	brand.SupplierID = input.SupplierID

	if err := database.DB.Save(&brand).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update brand"})
	}

	return c.JSON(brand)
}

func DeleteBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := database.DB.First(&brand, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Brand not found"})
	}

	var productCount int64
	database.DB.Model(&models.MasterProduct{}).Where("brand_id = ?", brand.ID).Count(&productCount)
	if productCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Brand is still referenced by products"})
	}

	if err := database.DB.Delete(&brand).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete brand"})
	}

	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}
