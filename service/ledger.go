// Package service contains the pieces sitting between the handlers and the
// outside world: the verification-token ledger, the mailer and background
// cleanup jobs
package service

import (
	"errors"
	"time"

	"openstudy/shop-api/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound = errors.New("verification token not found")
	ErrTokenExpired  = errors.New("verification token has expired")
	ErrTokenUsed     = errors.New("verification token was already used")
)

// Tokens are kept around for a while after expiry so that support can see
// what happened, then the cleanup job removes them
const tokenRetention = 60 * 24 * time.Hour

// Ledger issues and validates single-use, time-limited verification tokens.
// Two concurrent issues for the same user both stay valid until their own
// expiry.
type Ledger struct {
	db        *gorm.DB
	verifyTTL time.Duration
	resetTTL  time.Duration
}

func NewLedger(db *gorm.DB, verifyTTL, resetTTL time.Duration) *Ledger {
	return &Ledger{
		db:        db,
		verifyTTL: verifyTTL,
		resetTTL:  resetTTL,
	}
}

func (l *Ledger) ttl(purpose string) time.Duration {
	if purpose == model.PurposePasswordReset {
		return l.resetTTL
	}
	return l.verifyTTL
}

// Issue persists a fresh token for the user and returns it so the caller can
// embed it in an outbound email link
func (l *Ledger) Issue(userID int, purpose string) (*model.VerificationToken, error) {
	now := time.Now()
	cleanupAt := now.Add(tokenRetention)

	rec := &model.VerificationToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: now.Add(l.ttl(purpose)),
		CreatedAt: now,
		CleanupAt: &cleanupAt,
	}

	if err := l.db.Create(rec).Error; err != nil {
		return nil, err
	}

	return rec, nil
}

// Resolve looks a token up by value within the purpose
func (l *Ledger) Resolve(value, purpose string) (*model.VerificationToken, error) {
	var rec model.VerificationToken

	err := l.db.
		Where("token = ? AND purpose = ?", value, purpose).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// Consume checks expiry and marks the token used. Callers pass the
// transaction handle that also applies the side effect the token proves, so
// a token can never be spent without its effect landing.
func (l *Ledger) Consume(tx *gorm.DB, rec *model.VerificationToken) error {
	if rec.Used {
		return ErrTokenUsed
	}

	if time.Now().After(rec.ExpiresAt) {
		return ErrTokenExpired
	}

	now := time.Now()

	return tx.Model(&model.VerificationToken{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"used":    true,
			"used_at": now,
		}).Error
}
