package usecase

import (
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
)

// fallbackRow is one entry of the synthetic arrivals board.
type fallbackRow struct {
	flightID  string
	origin    string
	scheduled string
	estimated string
	terminal  string
	status    string
}

// The synthetic board served when live ingestion yields nothing
// usable. Times are fixed; only the date tracks the clock so the
// response shape stays valid for consumers.
var fallbackRows = []fallbackRow{
	{"Q2 707", "Cochin", "12:30", "12:25", "T1", "LANDED"},
	{"UL 115", "Colombo", "13:05", "", "T1", "ON TIME"},
	{"EK 652", "Dubai", "14:20", "14:45", "T1", "DELAYED"},
	{"Q2 253", "Gan", "15:10", "", "T2", "ON TIME"},
	{"FZ 1569", "Dubai", "16:40", "", "T1", "SCHEDULED"},
}

// FallbackFlights returns the fixed synthetic dataset dated to now.
func FallbackFlights(now time.Time) []*entity.FlightRecord {
	date := now.Format("2006-01-02")

	records := make([]*entity.FlightRecord, 0, len(fallbackRows))
	for _, row := range fallbackRows {
		records = append(records, &entity.FlightRecord{
			FlightID:      row.flightID,
			AirlineCode:   row.flightID[:2],
			Origin:        row.origin,
			FlightDate:    date,
			ScheduledTime: row.scheduled,
			EstimatedTime: row.estimated,
			ActualTime:    nil,
			Terminal:      row.terminal,
			Status:        row.status,
		})
	}
	return records
}
