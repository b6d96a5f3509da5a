package models

import (
	"strings"
	"time"

	"github.com/Skotchmaster/petompp/internal/auth"
)

type User struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name           string          `gorm:"size:64;not null"             json:"name"`
	NormalizedName string          `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Password       auth.Credential `gorm:"type:varchar(255);not null"   json:"-"`
	Role           auth.Role       `gorm:"not null"                     json:"role"`
	Confirmed      bool            `gorm:"not null"                     json:"confirmed"`
	CreatedAt      time.Time       `gorm:"not null"                     json:"created_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
}

func (u User) SubjectID() int64 { return int64(u.ID) }

func (u User) SubjectRole() auth.Role { return u.Role }

func (u User) IsDeleted() bool { return u.DeletedAt != nil }

func NormalizeName(name string) string {
	return strings.ToLower(name)
}
