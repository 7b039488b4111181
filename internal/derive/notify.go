package derive

import (
	"time"

	"fintrack/internal/core"
)

// DueSoonNotifications derives one notification per debt whose due date
// falls exactly one calendar day after now. Matching uses calendar-date
// equality, not a 24-hour window: a debt due today or in two days produces
// nothing.
//
// Derivation replaces the whole set, but read flags from prev survive for
// notifications that keep the same stable id across recomputations.
func DueSoonNotifications(debts []core.DebtRecord, now time.Time, prev []core.Notification) []core.Notification {
	read := make(map[string]bool, len(prev))
	for _, n := range prev {
		if n.Read {
			read[n.ID] = true
		}
	}

	tomorrow := now.AddDate(0, 0, 1)
	var out []core.Notification
	for _, d := range debts {
		if !core.SameDay(d.DueDate, tomorrow) {
			continue
		}
		id := "debt-" + d.ID
		out = append(out, core.Notification{
			ID:      id,
			Message: "Debt payment due for " + d.Category,
			Read:    read[id],
			DueDate: core.DateOnly(d.DueDate),
		})
	}
	return out
}

// MarkNotificationRead returns a copy of the set with the given notification
// flagged as read. Unknown ids leave the set unchanged.
func MarkNotificationRead(notifications []core.Notification, id string) []core.Notification {
	out := make([]core.Notification, len(notifications))
	copy(out, notifications)
	for i := range out {
		if out[i].ID == id {
			out[i].Read = true
		}
	}
	return out
}
