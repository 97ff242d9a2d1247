package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationModel mirrors the 'donations' table.
type DonationModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	User            *UserModel `gorm:"foreignKey:UserID"`
	ItemName        string     `gorm:"type:varchar(255);not null"`
	ItemDescription string     `gorm:"type:text;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt       time.Time  `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (DonationModel) TableName() string {
	return "donations"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&DonationModel{},
	}
}
