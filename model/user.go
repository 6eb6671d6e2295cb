package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         string `gorm:"uniqueIndex;not null" json:"uuid"`
	Role         string `gorm:"not null;default:user" json:"role"`
	FullName     string `gorm:"not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Verified     bool   `gorm:"default:false" json:"verified"`

	ProfilePic   *string `json:"profile_pic"`
	GithubLink   *string `json:"github_link"`
	LinkedinLink *string `json:"linkedin_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VerificationTokens []VerificationToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
