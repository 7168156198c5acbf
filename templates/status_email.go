package templates

import (
	"fmt"
	"html"
	"strings"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// Status-to-color mapping for the email badge.
const (
	colorLanded    = "#2e7d32"
	colorDelayed   = "#f9a825"
	colorCancelled = "#c62828"
	colorNeutral   = "#546e7a"
)

// StatusColor returns the badge color for a board status label.
func StatusColor(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "LANDED":
		return colorLanded
	case "DELAYED":
		return colorDelayed
	case "CANCELLED":
		return colorCancelled
	default:
		return colorNeutral
	}
}

const statusEmailTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:520px;margin:24px auto;background:#ffffff;border-radius:8px;padding:24px;">
    <h2 style="margin:0 0 4px 0;color:#263238;">Flight %s</h2>
    <p style="margin:0 0 16px 0;color:#607d8b;">%s &middot; from %s &middot; scheduled %s</p>
    <p style="margin:0 0 8px 0;color:#263238;">Status update:</p>
    <p style="margin:0;font-size:18px;">
      <span style="color:%s;">%s</span>
      &rarr;
      <span style="color:%s;font-weight:bold;">%s</span>
    </p>
  </div>
</body>
</html>`

// BuildStatusEmail renders the transition notification email. Returns
// the subject line and HTML body.
func BuildStatusEmail(change entity.StatusChange, airlineName string) (string, string) {
	rec := change.Record

	subject := fmt.Sprintf("Flight %s is now %s", rec.FlightID, change.NewStatus)
	body := fmt.Sprintf(statusEmailTemplate,
		html.EscapeString(rec.FlightID),
		html.EscapeString(airlineName),
		html.EscapeString(rec.Origin),
		html.EscapeString(rec.ScheduledTime),
		StatusColor(change.OldStatus),
		html.EscapeString(change.OldStatus),
		StatusColor(change.NewStatus),
		html.EscapeString(change.NewStatus),
	)

	return subject, body
}

// BuildStatusText renders the plain-text transition copy used by the
// SMS and push channels.
func BuildStatusText(change entity.StatusChange, airlineName string) string {
	rec := change.Record
	return fmt.Sprintf("%s flight %s from %s (scheduled %s) is now %s (was %s)",
		airlineName, rec.FlightID, rec.Origin, rec.ScheduledTime,
		change.NewStatus, change.OldStatus)
}
