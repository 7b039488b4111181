package derive

import (
	"errors"

	"fintrack/internal/core"
)

// ErrOverpayment is returned when a simulated payment would drive the
// remaining due amount below zero. Nothing is applied in that case.
var ErrOverpayment = errors.New("payment exceeds total due")

// TotalDue is the amount owed on a debt: principal plus simple interest,
// computed fresh on every call. Interest is not amortized over elapsed time.
func TotalDue(d core.DebtRecord) float64 {
	return d.Amount + d.Amount*d.InterestRate/100
}

// PreviewPayment simulates applying a payment against a debt and returns the
// due amount that would remain. It never commits anything: persistence is the
// caller's concern.
//
// A payment of zero or less is ignored and the unchanged total is returned.
// A payment larger than the total due is rejected with ErrOverpayment.
func PreviewPayment(d core.DebtRecord, payment float64) (float64, error) {
	total := TotalDue(d)
	if payment <= 0 {
		return total, nil
	}
	remaining := total - payment
	if remaining < 0 {
		return total, ErrOverpayment
	}
	return remaining, nil
}
