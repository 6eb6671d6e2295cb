package service

import (
	"time"

	"openstudy/shop-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup periodically deletes verification tokens whose retention
// window has passed
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("cleanup_at < ?", time.Now()).
				Delete(&model.VerificationToken{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup verification tokens", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up verification tokens", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
