package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
)

// Cell layout of an arrivals-board row.
const (
	cellFlightID  = 0
	cellOrigin    = 1
	cellDate      = 2
	cellScheduled = 3
	cellEstimated = 4
	cellTerminal  = 5
	cellStatus    = 6

	minBoardCells = 7
)

// A flight identifier is a carrier prefix starting with a letter,
// optional whitespace, then the flight number ("Q2 707", "VP605").
// Bare numbers such as "723" are row counters, not flights.
var flightIDPattern = regexp.MustCompile(`(?i)^[A-Z][A-Z0-9]+\s*\d+$`)

// BoardParser extracts flight records from a raw arrivals-board
// document. Precision is favored over recall: a row that fails the
// acceptance rule is skipped silently rather than fabricating a flight.
type BoardParser struct {
	extractor RowExtractor
	logger    logger.Logger
}

// NewBoardParser creates a new board parser
func NewBoardParser(extractor RowExtractor, logger logger.Logger) *BoardParser {
	return &BoardParser{
		extractor: extractor,
		logger:    logger,
	}
}

// Parse returns accepted flight rows in document order. A document
// yielding zero rows is not an error here; the pipeline decides
// whether to fall back.
func (p *BoardParser) Parse(doc string) []*entity.FlightRecord {
	rows := p.extractor.ExtractRows(doc)

	var records []*entity.FlightRecord
	for _, cells := range rows {
		record, err := parseBoardRow(cells)
		if err != nil {
			p.logger.Debug("Skipping board row", "reason", err.Error(), "cells", len(cells))
			continue
		}
		records = append(records, record)
	}

	p.logger.Info("Board parsed", "rows", len(rows), "accepted", len(records))
	return records
}

// parseBoardRow applies the row acceptance rule and derives the
// structured record fields.
func parseBoardRow(cells []string) (*entity.FlightRecord, error) {
	if len(cells) < minBoardCells {
		return nil, fmt.Errorf("insufficient cells: %d", len(cells))
	}

	flightID := strings.TrimSpace(cells[cellFlightID])
	if !flightIDPattern.MatchString(flightID) {
		return nil, fmt.Errorf("cell 0 %q is not a flight identifier", flightID)
	}

	flightDate, err := parseBoardDate(cells[cellDate])
	if err != nil {
		return nil, err
	}

	scheduled := strings.TrimSpace(cells[cellScheduled])
	if scheduled == "" {
		return nil, fmt.Errorf("missing scheduled time")
	}

	origin := strings.TrimSpace(cells[cellOrigin])
	if origin == "" {
		origin = "Unknown"
	}

	terminal := strings.Join(strings.Fields(cells[cellTerminal]), "")
	if terminal == "" {
		terminal = "T1"
	}

	status := strings.TrimSpace(cells[cellStatus])
	if status == "" {
		status = "-"
	}

	return &entity.FlightRecord{
		FlightID:      flightID,
		AirlineCode:   strings.ToUpper(flightID[:2]),
		Origin:        origin,
		FlightDate:    flightDate,
		ScheduledTime: scheduled,
		EstimatedTime: strings.TrimSpace(cells[cellEstimated]),
		ActualTime:    nil,
		Terminal:      terminal,
		Status:        status,
	}, nil
}

// parseBoardDate converts the board's DD/MM/YYYY into zero-padded ISO
// YYYY-MM-DD.
func parseBoardDate(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("date %q does not have 3 components", raw)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", fmt.Errorf("invalid day in %q", raw)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", fmt.Errorf("invalid month in %q", raw)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return "", fmt.Errorf("invalid year in %q", raw)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// Deduplicate collapses parsed records to one per (flight identifier,
// flight date). Later rows overwrite earlier ones for the same key.
func Deduplicate(records []*entity.FlightRecord) []*entity.FlightRecord {
	index := make(map[string]int, len(records))
	var out []*entity.FlightRecord
	for _, record := range records {
		key := record.Key()
		if i, ok := index[key]; ok {
			out[i] = record
			continue
		}
		index[key] = len(out)
		out = append(out, record)
	}
	return out
}
