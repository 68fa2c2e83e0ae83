package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report — отчёт подразделения; авторство обязательно.
type Report struct {
	ID          string       `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Type        ReportType   `gorm:"not null" json:"type"`
	CustomType  *string      `json:"customType,omitempty"` // только при Type == CUSTOM
	Description string       `gorm:"not null" json:"description"`
	Content     string       `json:"content,omitempty"`
	Status      ReportStatus `gorm:"not null;default:DRAFT;index" json:"status"`

	UserID string `gorm:"not null;type:uuid;index" json:"userId"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE" json:"user,omitempty"`

	PoldaID  *string `gorm:"type:uuid;index" json:"poldaId,omitempty"`
	Polda    *Polda  `gorm:"constraint:OnUpdate:CASCADE" json:"polda,omitempty"`
	PolresID *string `gorm:"type:uuid;index" json:"polresId,omitempty"`
	Polres   *Polres `gorm:"constraint:OnUpdate:CASCADE" json:"polres,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// CustomReportType — справочник пользовательских типов отчётов.
type CustomReportType struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string  `gorm:"not null;uniqueIndex" json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *CustomReportType) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
