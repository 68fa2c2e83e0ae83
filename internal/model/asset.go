package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset — единица имущества (материальная или цифровая) с QR-меткой.
type Asset struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Category — устаревшая текстовая метка; CategoryID — актуальная ссылка
	// на справочник категорий.
	Category   string    `gorm:"not null;default:LAINNYA" json:"category"`
	CategoryID *string   `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	CategoryRef *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"categoryRef,omitempty"`

	Kind   AssetKind   `json:"kind,omitempty"`
	Status AssetStatus `gorm:"not null;default:ACTIVE;index" json:"status"`

	// null разрешён многим строкам, непустые значения глобально уникальны
	InventoryNumber *string `gorm:"uniqueIndex" json:"inventoryNumber,omitempty"`
	Year            *int    `json:"year,omitempty"`
	Source          *string `json:"source,omitempty"`

	PoldaID  *string `gorm:"type:uuid;index" json:"poldaId,omitempty"`
	Polda    *Polda  `gorm:"constraint:OnUpdate:CASCADE" json:"polda,omitempty"`
	PolresID *string `gorm:"type:uuid;index" json:"polresId,omitempty"`
	Polres   *Polres `gorm:"constraint:OnUpdate:CASCADE" json:"polres,omitempty"`

	AssignedTo *string `gorm:"type:uuid;index" json:"assignedTo,omitempty"`
	User       *User   `gorm:"foreignKey:AssignedTo;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`

	QRData *string `gorm:"column:qr_data" json:"qrData,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
