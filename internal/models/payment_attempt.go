package models

import "time"

// Attempt statuses. Transitions are monotonic: pending → paid or
// pending → failed, never back.
const (
	AttemptPending = "pending"
	AttemptPaid    = "paid"
	AttemptFailed  = "failed"
)

// PaymentAttempt journals one checkout attempt against a gateway. It is the
// local record the reconciliation sweep uses to catch payments whose
// callback never reached us.
type PaymentAttempt struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNumber string    `gorm:"column:order_number;size:64;index" json:"order_number"`
	Gateway     string    `gorm:"column:gateway;size:32" json:"gateway"`
	TrackID     string    `gorm:"column:track_id;size:191;uniqueIndex" json:"track_id"`
	Amount      int64     `gorm:"column:amount" json:"amount"`
	Currency    string    `gorm:"column:currency;size:8" json:"currency"`
	Status      string    `gorm:"column:status;size:16;index" json:"status"`
	RefNumber   string    `gorm:"column:ref_number;size:191" json:"ref_number"`
	CardNumber  string    `gorm:"column:card_number;size:32" json:"card_number"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}
