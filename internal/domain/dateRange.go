package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateRange indica que a data inicial é posterior à final.
var ErrInvalidDateRange = errors.New("a data 'from' não pode ser posterior a 'to'")

// DateRange é um intervalo fechado de instantes.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange resolve o intervalo efetivo de consulta. Sem 'from', assume os
// últimos 7 dias; sem 'to', assume agora. Datas explícitas são expandidas para
// início e fim do dia respectivamente.
func NewDateRange(from, to *time.Time, now time.Time) (DateRange, error) {
	start := now.AddDate(0, 0, -7)
	if from != nil {
		start = StartOfDay(*from)
	}

	end := now
	if to != nil {
		end = EndOfDay(*to)
	}

	if start.After(end) {
		return DateRange{}, ErrInvalidDateRange
	}

	return DateRange{From: start, To: end}, nil
}

// StartOfDay trunca o instante para 00:00:00 do mesmo dia.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay expande o instante para 23:59:59.999 do mesmo dia.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
