package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wave is an administrative grouping that grants a user a capped number of
// listable properties.
type Wave struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	Creator     *User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"creator,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *Wave) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID, err = uuid.NewV7()
	}
	return
}

// CustomerWavePermission caps how many properties a user may list in a wave.
// UsedProperties <= MaxProperties is enforced by the property service at
// write time, not by a database constraint.
type CustomerWavePermission struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_wave,priority:1" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	WaveID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_wave,priority:2" json:"wave_id"`
	Wave           *Wave     `gorm:"foreignKey:WaveID;constraint:OnDelete:CASCADE" json:"wave,omitempty"`
	MaxProperties  int       `gorm:"not null;default:0" json:"max_properties"`
	UsedProperties int       `gorm:"not null;default:0" json:"used_properties"`
	GrantedAt      time.Time `gorm:"autoCreateTime" json:"granted_at"`
}

func (p *CustomerWavePermission) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
