package request

import (
	"strings"
	"time"
)

type BlockDatesRequest struct {
	Dates  []string `json:"dates" binding:"required,min=1"`
	Reason string   `json:"reason" binding:"required"`
}

func (r BlockDatesRequest) ParsedDates() ([]time.Time, error) {
	return parseDates(r.Dates)
}

func (r BlockDatesRequest) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}

type UnblockDatesRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

func (r UnblockDatesRequest) ParsedDates() ([]time.Time, error) {
	return parseDates(r.Dates)
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
