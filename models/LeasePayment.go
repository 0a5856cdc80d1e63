package models

import (
	"time"

	"gorm.io/gorm"
)

// Direction discriminates the two independently sequenced payment tracks of
// a lease. Guest and host tracks share the same shape.
const (
	PaymentDirectionGuest = "guest"
	PaymentDirectionHost  = "host"
)

// LeasePayment is one scheduled charge in a lease's payment schedule.
type LeasePayment struct {
	gorm.Model
	LeaseID       uint      `json:"leaseID" gorm:"index"`
	Sequence      int       `json:"sequence"` // 1..N contiguous within a direction
	DueDate       time.Time `json:"dueDate"`
	Rent          float64   `json:"rent"`
	Fee           float64   `json:"fee"`
	DamageDeposit float64   `json:"damageDeposit"` // non-zero only on the first record
	Direction     string    `json:"direction" gorm:"size:10;index"` // guest, host
}
