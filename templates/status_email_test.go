package templates

import (
	"strings"
	"testing"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func sampleChange() entity.StatusChange {
	return entity.StatusChange{
		Record: entity.FlightRecord{
			FlightID:      "Q2 707",
			AirlineCode:   "Q2",
			Origin:        "Cochin",
			FlightDate:    "2025-01-25",
			ScheduledTime: "12:30",
			Status:        "LANDED",
		},
		OldStatus: "DELAYED",
		NewStatus: "LANDED",
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"LANDED", "#2e7d32"},
		{"landed", "#2e7d32"},
		{" Landed ", "#2e7d32"},
		{"DELAYED", "#f9a825"},
		{"CANCELLED", "#c62828"},
		{"ON TIME", "#546e7a"},
		{"-", "#546e7a"},
		{"", "#546e7a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusColor(tt.status), "status %q", tt.status)
	}
}

func TestBuildStatusEmail(t *testing.T) {
	subject, body := BuildStatusEmail(sampleChange(), "Maldivian")

	assert.Equal(t, "Flight Q2 707 is now LANDED", subject)
	assert.Contains(t, body, "Flight Q2 707")
	assert.Contains(t, body, "Maldivian")
	assert.Contains(t, body, "from Cochin")
	assert.Contains(t, body, "scheduled 12:30")
	assert.Contains(t, body, "DELAYED")
	assert.Contains(t, body, "LANDED")
	assert.Contains(t, body, "#f9a825")
	assert.Contains(t, body, "#2e7d32")
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
}

func TestBuildStatusEmail_EscapesMarkup(t *testing.T) {
	change := sampleChange()
	change.Record.Origin = `<script>alert("x")</script>`

	_, body := BuildStatusEmail(change, "Maldivian")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestBuildStatusText(t *testing.T) {
	text := BuildStatusText(sampleChange(), "Maldivian")
	assert.Equal(t, "Maldivian flight Q2 707 from Cochin (scheduled 12:30) is now LANDED (was DELAYED)", text)
}
