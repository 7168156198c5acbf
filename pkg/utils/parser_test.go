package utils

import (
	"testing"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *BoardParser {
	return NewBoardParser(NewHTMLTableExtractor(), logger.NewNopLogger())
}

func rowHTML(cells ...string) string {
	html := "<tr>"
	for _, c := range cells {
		html += "<td>" + c + "</td>"
	}
	return html + "</tr>"
}

func TestParse_AcceptsWellFormedRow(t *testing.T) {
	doc := "<html><body><table>" +
		rowHTML("Q2 707", "Cochin", "25/01/2025", "12:30", "12:25", "T1", "LANDED", "x") +
		"</table></body></html>"

	records := newTestParser().Parse(doc)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Q2 707", rec.FlightID)
	assert.Equal(t, "Q2", rec.AirlineCode)
	assert.Equal(t, "Cochin", rec.Origin)
	assert.Equal(t, "2025-01-25", rec.FlightDate)
	assert.Equal(t, "12:30", rec.ScheduledTime)
	assert.Equal(t, "12:25", rec.EstimatedTime)
	assert.Equal(t, "T1", rec.Terminal)
	assert.Equal(t, "LANDED", rec.Status)
	assert.Nil(t, rec.ActualTime)
}

func TestParse_FlightIdentifierRule(t *testing.T) {
	tests := []struct {
		name     string
		flightID string
		accepted bool
	}{
		{"carrier with space", "Q2 707", true},
		{"carrier without space", "VP605", true},
		{"lowercase carrier", "q2 707", true},
		{"three letter carrier", "UAE123", true},
		{"bare number", "723", false},
		{"letters only", "DELAYED", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "<table>" + rowHTML(tt.flightID, "Male", "01/02/2025", "10:00", "", "T1", "ON TIME") + "</table>"
			records := newTestParser().Parse(doc)
			if tt.accepted {
				require.Len(t, records, 1)
			} else {
				assert.Empty(t, records)
			}
		})
	}
}

func TestParse_RejectsShortRows(t *testing.T) {
	doc := "<table>" + rowHTML("Q2 707", "Cochin", "25/01/2025", "12:30", "12:25", "T1") + "</table>"
	assert.Empty(t, newTestParser().Parse(doc))
}

func TestParse_RejectsBadDates(t *testing.T) {
	tests := []string{"25-01-2025", "25/01", "25/01/2025/07", ""}
	for _, date := range tests {
		doc := "<table>" + rowHTML("Q2 707", "Cochin", date, "12:30", "", "T1", "LANDED") + "</table>"
		assert.Empty(t, newTestParser().Parse(doc), "date %q should be rejected", date)
	}
}

func TestParse_RejectsMissingScheduledTime(t *testing.T) {
	doc := "<table>" + rowHTML("Q2 707", "Cochin", "25/01/2025", "", "", "T1", "LANDED") + "</table>"
	assert.Empty(t, newTestParser().Parse(doc))
}

func TestParse_ZeroPadsDateComponents(t *testing.T) {
	doc := "<table>" + rowHTML("Q2 707", "Cochin", "5/1/2025", "12:30", "", "T1", "LANDED") + "</table>"
	records := newTestParser().Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-01-05", records[0].FlightDate)
}

func TestParse_AppliesDefaults(t *testing.T) {
	doc := "<table>" + rowHTML("vp 605", "", "25/01/2025", "09:15", "", "", "") + "</table>"
	records := newTestParser().Parse(doc)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "VP", rec.AirlineCode)
	assert.Equal(t, "Unknown", rec.Origin)
	assert.Equal(t, "T1", rec.Terminal)
	assert.Equal(t, "-", rec.Status)
	assert.Empty(t, rec.EstimatedTime)
}

func TestParse_NormalizesTerminalWhitespace(t *testing.T) {
	doc := "<table>" + rowHTML("Q2 707", "Cochin", "25/01/2025", "12:30", "", " T 2 ", "LANDED") + "</table>"
	records := newTestParser().Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "T2", records[0].Terminal)
}

func TestParse_DecodesEntitiesInsideCells(t *testing.T) {
	doc := "<table>" + rowHTML("Q2&nbsp;707", "Cochin&nbsp;", "25/01/2025", "12:30", "", "T1", "LANDED") + "</table>"
	records := newTestParser().Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Q2 707", records[0].FlightID)
	assert.Equal(t, "Cochin", records[0].Origin)
}

func TestParse_StripsNestedMarkup(t *testing.T) {
	doc := "<table><tr>" +
		"<td><span class=\"flight\">Q2 707</span></td>" +
		"<td><b>Cochin</b></td>" +
		"<td>25/01/2025</td><td>12:30</td><td></td><td>T1</td>" +
		"<td><span style=\"color:green\">LANDED</span></td>" +
		"</tr></table>"
	records := newTestParser().Parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Q2 707", records[0].FlightID)
	assert.Equal(t, "LANDED", records[0].Status)
}

func TestParse_SkipsHeaderAndKeepsDocumentOrder(t *testing.T) {
	doc := "<table>" +
		"<tr><th>Flight</th><th>Origin</th><th>Date</th><th>STA</th><th>ETA</th><th>Terminal</th><th>Status</th></tr>" +
		rowHTML("Q2 707", "Cochin", "25/01/2025", "12:30", "", "T1", "LANDED") +
		rowHTML("UL 115", "Colombo", "25/01/2025", "13:05", "", "T1", "ON TIME") +
		"</table>"

	records := newTestParser().Parse(doc)
	require.Len(t, records, 2)
	assert.Equal(t, "Q2 707", records[0].FlightID)
	assert.Equal(t, "UL 115", records[1].FlightID)
}

func TestParse_EmptyAndMalformedDocuments(t *testing.T) {
	parser := newTestParser()
	assert.Empty(t, parser.Parse(""))
	assert.Empty(t, parser.Parse("not html at all"))
	assert.Empty(t, parser.Parse("<html><body><p>maintenance</p></body></html>"))
	// Truncated markup must not panic or fabricate rows.
	assert.Empty(t, parser.Parse("<table><tr><td>Q2 707</td><td>Cochin"))
}

func TestDeduplicate_LastRowWins(t *testing.T) {
	a := &entity.FlightRecord{FlightID: "Q2 707", FlightDate: "2025-01-25", Status: "ON TIME"}
	b := &entity.FlightRecord{FlightID: "Q2 707", FlightDate: "2025-01-25", Status: "LANDED"}
	other := &entity.FlightRecord{FlightID: "UL 115", FlightDate: "2025-01-25", Status: "ON TIME"}

	out := Deduplicate([]*entity.FlightRecord{a, other, b})
	require.Len(t, out, 2)
	assert.Equal(t, "LANDED", out[0].Status)
	assert.Equal(t, "UL 115", out[1].FlightID)
}

func TestDeduplicate_SameFlightDifferentDates(t *testing.T) {
	a := &entity.FlightRecord{FlightID: "Q2 707", FlightDate: "2025-01-25", Status: "LANDED"}
	b := &entity.FlightRecord{FlightID: "Q2 707", FlightDate: "2025-01-26", Status: "ON TIME"}

	out := Deduplicate([]*entity.FlightRecord{a, b})
	assert.Len(t, out, 2)
}
