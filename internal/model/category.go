package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category — справочник категорий активов.
type Category struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Kind        AssetKind `json:"kind,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
