package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Polda — региональное управление (верхний уровень иерархии).
type Polda struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Name    string `gorm:"not null;uniqueIndex" json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`

	// Связи
	Polres []Polres `gorm:"constraint:OnUpdate:CASCADE" json:"polres,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Polda) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Polres — районное управление, принадлежит Polda.
// Имя уникально в пределах своего Polda.
type Polres struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Name    string `gorm:"not null;uniqueIndex:idx_polres_name_polda" json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`

	PoldaID string `gorm:"not null;index;type:uuid;uniqueIndex:idx_polres_name_polda" json:"poldaId"`
	Polda   *Polda `gorm:"constraint:OnUpdate:CASCADE" json:"polda,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Polres) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
