package models

type Product struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	ImagePath  string  `gorm:"type:varchar(255)" json:"image_path"`
	CategoryID uint    `gorm:"index" json:"category_id"`
}

// ProductListing is the /products row shape: product columns joined with the
// category name. CategoryName is nil when the category no longer exists.
type ProductListing struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImagePath    string  `json:"image_path"`
	CategoryName *string `json:"category_name"`
}
