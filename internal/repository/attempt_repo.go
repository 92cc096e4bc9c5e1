package repository

import (
	"time"

	"gorm.io/gorm"

	"shopgate/internal/models"
)

// AttemptRepository handles payment attempt database operations.
type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create records a new pending attempt.
func (r *AttemptRepository) Create(attempt *models.PaymentAttempt) error {
	if attempt.Status == "" {
		attempt.Status = models.AttemptPending
	}
	return r.db.Create(attempt).Error
}

// FindByTrackID returns the attempt for a gateway transaction reference.
func (r *AttemptRepository) FindByTrackID(trackID string) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	if err := r.db.Where("track_id = ?", trackID).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindByOrderNumber returns all attempts for an order, newest first.
func (r *AttemptRepository) FindByOrderNumber(orderNumber string) ([]models.PaymentAttempt, error) {
	var attempts []models.PaymentAttempt
	err := r.db.Where("order_number = ?", orderNumber).
		Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

// MarkPaid settles a pending attempt. The status guard keeps the transition
// monotonic: a paid attempt is never rewritten.
func (r *AttemptRepository) MarkPaid(trackID, refNumber, cardNumber string) error {
	return r.db.Model(&models.PaymentAttempt{}).
		Where("track_id = ? AND status = ?", trackID, models.AttemptPending).
		Updates(map[string]interface{}{
			"status":      models.AttemptPaid,
			"ref_number":  refNumber,
			"card_number": cardNumber,
		}).Error
}

// MarkFailed closes a pending attempt after a definitive gateway rejection.
func (r *AttemptRepository) MarkFailed(trackID string) error {
	return r.db.Model(&models.PaymentAttempt{}).
		Where("track_id = ? AND status = ?", trackID, models.AttemptPending).
		Update("status", models.AttemptFailed).Error
}

// ListPending returns pending attempts older than the stale window, oldest
// first, capped at limit.
func (r *AttemptRepository) ListPending(olderThan time.Duration, limit int) ([]models.PaymentAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	cutoff := time.Now().Add(-olderThan)

	var attempts []models.PaymentAttempt
	err := r.db.Where("status = ? AND created_at < ?", models.AttemptPending, cutoff).
		Order("created_at ASC").Limit(limit).Find(&attempts).Error
	return attempts, err
}
