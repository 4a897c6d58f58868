// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/rm-entrenador/backend/internal/domain/valueobject"
)

// PaymentStatus represents the derived subscription state of a client.
// The wire values are the Spanish labels the dashboard displays.
type PaymentStatus string

const (
	StatusPaid       PaymentStatus = "Pagado"
	StatusPending    PaymentStatus = "Pendiente"
	StatusOverdue    PaymentStatus = "Vencido"
	StatusNotRenewed PaymentStatus = "No Renovado"
	StatusUndefined  PaymentStatus = "Indefinido"
)

// NotRenewedAfterDays is the number of days past the due date after which a
// subscription is considered abandoned rather than merely late.
const NotRenewedAfterDays = 31

// ClassifierOptions selects between status-derivation revisions.
type ClassifierOptions struct {
	// LegacyPaidFallback reproduces the earlier rule set that had no
	// Pending state: a due date in the future with no recorded payment
	// classifies as Paid instead of Pending.
	LegacyPaidFallback bool
}

// ClassifyPaymentStatus derives a subscription status from a payment's pay
// date and due date relative to today. It never fails: missing or invalid
// input degrades to Undefined. All comparisons are made on midnight-
// normalized calendar dates, so a payment due today is not overdue yet.
func ClassifyPaymentStatus(payDate, dueDate *time.Time, today time.Time, opts ClassifierOptions) PaymentStatus {
	if dueDate == nil {
		return StatusUndefined
	}

	daysOverdue := valueobject.DaysBetween(*dueDate, today)
	if daysOverdue > NotRenewedAfterDays {
		return StatusNotRenewed
	}
	if daysOverdue > 0 {
		return StatusOverdue
	}
	if payDate != nil {
		return StatusPaid
	}
	if opts.LegacyPaidFallback {
		return StatusPaid
	}
	return StatusPending
}

// StatusRank orders statuses for display: clients in good standing first,
// lapsed ones last. Lower ranks sort first.
func StatusRank(s PaymentStatus) int {
	switch s {
	case StatusPaid:
		return 0
	case StatusOverdue:
		return 1
	case StatusPending:
		return 2
	case StatusUndefined:
		return 3
	case StatusNotRenewed:
		return 4
	default:
		return 5
	}
}
