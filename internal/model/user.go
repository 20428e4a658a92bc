package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

// Supported UI languages. Every language-constrained column validates
// against this closed set.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
	LangKurdish = "kur"
)

func SupportedLanguage(code string) bool {
	return code == LangEnglish || code == LangArabic || code == LangKurdish
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	RoleID       *uint      `json:"role_id"`
	Role         Role       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	Phone        *string    `gorm:"size:30" json:"phone,omitempty"`
	AvatarURL    *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	WaveBalance  int        `gorm:"default:0" json:"wave_balance"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	IsExpired    bool       `gorm:"default:false" json:"is_expired"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Languages []UserLanguage `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"languages,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

type UserLanguage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_language,priority:1" json:"user_id"`
	Language  string    `gorm:"size:5;not null;uniqueIndex:idx_user_language,priority:2" json:"language"` // 'en', 'ar', 'kur'
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
