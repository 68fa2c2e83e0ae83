package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User — сотрудник. Привязка к Polda/Polres зависит от роли:
// USER — оба, POLRES — polres (polda выводится), POLDA — только polda.
type User struct {
	ID       string     `gorm:"primaryKey;type:uuid" json:"id"`
	NRP      string     `gorm:"not null;uniqueIndex" json:"nrp"`
	Name     string     `gorm:"not null" json:"name"`
	Email    string     `gorm:"not null;uniqueIndex" json:"email"`
	Password string     `gorm:"not null" json:"-"` // bcrypt-хеш, наружу не отдаём
	Role     Role       `gorm:"not null;default:USER" json:"role"`
	Status   UserStatus `gorm:"not null;default:PENDING;index" json:"status"`

	PoldaID  *string `gorm:"type:uuid;index" json:"poldaId,omitempty"`
	Polda    *Polda  `gorm:"constraint:OnUpdate:CASCADE" json:"polda,omitempty"`
	PolresID *string `gorm:"type:uuid;index" json:"polresId,omitempty"`
	Polres   *Polres `gorm:"constraint:OnUpdate:CASCADE" json:"polres,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
