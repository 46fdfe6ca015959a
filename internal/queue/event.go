// Package queue carries payslip-issued events over RabbitMQ: the event
// payload, a best-effort publisher used by the API and the consumer
// that journals them.
package queue

import (
	"fmt"
	"time"
)

// PayslipIssuedEvent is published whenever a payslip document is
// generated.  It holds enough to journal the payout without reading the
// primary database.
type PayslipIssuedEvent struct {
	UserID      uint64    `json:"user_id"`
	CaregiverID uint64    `json:"caregiver_id"`
	CustomID    int64     `json:"custom_id"`
	Name        string    `json:"name"`
	TotalBank   float64   `json:"total_bank"`
	Format      string    `json:"format"`
	IssuedAt    time.Time `json:"issued_at"`
}

// journalLine renders ev as a single human-friendly log line.
func (ev PayslipIssuedEvent) journalLine() string {
	return fmt.Sprintf("[%s] Payslip issued | user_id=%d | caregiver_id=%d | custom_id=%d | name=%q | total_bank=%.2f | format=%s\n",
		ev.IssuedAt.UTC().Format(time.RFC3339), ev.UserID, ev.CaregiverID, ev.CustomID, ev.Name, ev.TotalBank, ev.Format)
}
