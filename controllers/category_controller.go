package controllers

import (
	"errors"
	"log"
	"strconv"

	"shopsave-backend/catalog"
	"shopsave-backend/database"
	"shopsave-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.DB.Find(&categories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

func GetCategoryByID(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.Preload("Children").First(&category, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
	}
	return c.JSON(category)
}

// GetCategoryDescendants returns the category plus every transitive child id,
// the same expansion the listing filter uses.
func GetCategoryDescendants(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	expanded, err := catalog.ExpandCategoryFilter(database.DB, []uint{uint(id)})
	if err != nil {
		log.Printf("❌ Category expansion failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to expand category"})
	}

	return c.JSON(fiber.Map{"category_ids": expanded})
}

type CategoryInput struct {
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

func CreateCategory(c *fiber.Ctx) error {
	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}
	if input.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	var existing models.Category
	if err := database.DB.Where("LOWER(name) = LOWER(?)", input.Name).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category name already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"error": "Error checking existing category"})
	}

	if input.ParentID != nil {
		var parent models.Category
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "Parent category not found"})
		}
	}

	category := models.Category{
		Name:     input.Name,
		ParentID: input.ParentID,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create category"})
	}

	return c.Status(201).JSON(category)
}

func UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
	}

	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}

	var existing models.Category
	if err := database.DB.
		Where("LOWER(name) = LOWER(?) AND id != ?", input.Name, category.ID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category name already in use"})
	}

	if input.ParentID != nil {
		if *input.ParentID == category.ID {
			return c.Status(400).JSON(fiber.Map{"error": "Category cannot be its own parent"})
		}
		var parent models.Category
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "Parent category not found"})
		}
	}

	category.Name = input.Name
	category.ParentID = input.ParentID

	if err := database.DB.Save(&category).Error; err != nil {
		log.Printf("❌ Failed to save category %v: %v\n", category.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update category"})
	}

	return c.JSON(category)
}

func DeleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
	}

	var childCount int64
	database.DB.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&childCount)
	if childCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category has child categories"})
	}

	var productCount int64
	database.DB.Model(&models.MasterProduct{}).Where("category_id = ?", category.ID).Count(&productCount)
	if productCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category is still referenced by products"})
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete category"})
	}

	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
