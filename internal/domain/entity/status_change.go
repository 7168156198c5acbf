// internal/domain/entity/status_change.go
package entity

import "fmt"

// StatusChange pairs a freshly parsed flight record with the board
// status it replaces. It only exists between change detection and
// notification dispatch and is never persisted on its own.
type StatusChange struct {
	Record    FlightRecord
	OldStatus string
	NewStatus string
}

// Describe returns the human-readable transition used in notification
// copy and log entries.
func (c StatusChange) Describe() string {
	return fmt.Sprintf("Flight %s on %s: %s -> %s",
		c.Record.FlightID, c.Record.FlightDate, c.OldStatus, c.NewStatus)
}
