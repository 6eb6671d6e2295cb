package model

import "time"

// Token purposes. Each purpose has its own TTL, owned by the ledger.
const (
	PurposeEmailVerify   = "email_verify"
	PurposePasswordReset = "password_reset"
)

type VerificationToken struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	UserID    int    `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	Purpose   string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
	CleanupAt *time.Time
	Used      bool
}
