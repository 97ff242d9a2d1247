package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. Features is stored as a JSON array.
type ProductModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(255);not null"`
	CategoryID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Category        *CategoryModel `gorm:"foreignKey:CategoryID"`
	Price           float64        `gorm:"not null"`
	OriginalPrice   *float64
	Description     string `gorm:"type:text;not null"`
	FullDescription string `gorm:"type:text"`
	Image           string `gorm:"type:varchar(512);not null"`
	EcoTag          string `gorm:"type:varchar(100)"`
	InStock         bool   `gorm:"not null"`
	Rating          float64
	Reviews         int
	Features        datatypes.JSONSlice[string]
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
