// model/booking.go
package model

import (
	"time"

	"github.com/Madruu/astrocode-project/util/money"
)

type BookingStatus string

const (
	BookingBooked    BookingStatus = "BOOKED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentMethod string

const (
	MethodWallet PaymentMethod = "wallet"
	MethodDirect PaymentMethod = "direct"
)

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	TaskID        int64         `json:"task_id"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	Status        BookingStatus `json:"status"`
	Paid          bool          `json:"paid"`
	Method        PaymentMethod `json:"method"`
	// Price freezes the amount charged at booking time so later task price
	// edits cannot change the refund.
	Price        money.Amount `json:"price"`
	Reference    string       `json:"reference,omitempty"`
	CancelReason string       `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time   `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
