package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/digiadi/digiadi-backend/models"
	"github.com/digiadi/digiadi-backend/utils"
)

// CatalogController serves the read-only category and product listings. The
// catalog is seeded out of band; there are no write endpoints here.
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// GetAllCategories -> all categories, id ascending.
func (cc *CatalogController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Order("id ASC").Find(&categories).Error; err != nil {
		utils.RespondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetAllProducts -> products joined with their category name. A product whose
// category is missing still appears, with a null category_name.
func (cc *CatalogController) GetAllProducts(c *gin.Context) {
	var rows []models.ProductListing
	err := cc.DB.Table("products").
		Select("products.id, products.name, products.price, products.image_path, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.category_id ASC, products.name ASC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondInternal(c, err)
		return
	}
	if rows == nil {
		rows = []models.ProductListing{}
	}
	c.JSON(http.StatusOK, rows)
}
