package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
)

const unknownClient = "N/A"

type HistoryService interface {
	History(ctx context.Context, filter models.HistoryFilter) ([]*models.HistoryEntry, error)
	DriverHistory(ctx context.Context, driverID int64, from, to *time.Time) ([]*models.HistoryEntry, error)
}

type historyService struct {
	services     RecordService
	reservations RecordService
}

func NewHistoryService(services, reservations RecordService) HistoryService {
	return &historyService{services: services, reservations: reservations}
}

// History loads both record kinds concurrently and merges them.
func (h *historyService) History(ctx context.Context, filter models.HistoryFilter) ([]*models.HistoryEntry, error) {
	if filter.From != nil && filter.To != nil && calendarDay(*filter.From).After(calendarDay(*filter.To)) {
		return nil, apperr.Validation("date range starts after it ends")
	}

	var services, reservations []*models.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = h.services.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = h.reservations.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildHistory(services, reservations, filter), nil
}

func (h *historyService) DriverHistory(ctx context.Context, driverID int64, from, to *time.Time) ([]*models.HistoryEntry, error) {
	if driverID <= 0 {
		return nil, apperr.Validation("driver id %d is not valid", driverID)
	}
	return h.History(ctx, models.HistoryFilter{DriverID: &driverID, From: from, To: to})
}

// BuildHistory merges services and reservations into one sequence, most
// recent first. Entries with equal dates keep concatenation order, services
// before reservations. An active driver filter excludes records without a
// driver.
func BuildHistory(services, reservations []*models.Record, filter models.HistoryFilter) []*models.HistoryEntry {
	out := make([]*models.HistoryEntry, 0, len(services)+len(reservations))
	for _, group := range [][]*models.Record{services, reservations} {
		for _, rec := range group {
			if filter.DriverID != nil && (rec.DriverID == nil || *rec.DriverID != *filter.DriverID) {
				continue
			}
			if !inRange(rec.Date, filter.From, filter.To) {
				continue
			}
			out = append(out, historyEntry(rec))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func historyEntry(rec *models.Record) *models.HistoryEntry {
	e := &models.HistoryEntry{
		ID:          fmt.Sprintf("%s-%d", rec.Kind, rec.ID),
		Kind:        rec.Kind,
		RecordID:    rec.ID,
		Date:        rec.Date,
		Time:        rec.Time,
		Origin:      rec.Origin,
		Destination: rec.Destination,
		Price:       rec.Price,
		Surcharge:   rec.Surcharge,
		DriverID:    rec.DriverID,
		ClientName:  unknownClient,
	}
	if rec.Driver != nil {
		e.DriverName = rec.Driver.Name
	}
	if rec.Client != nil && rec.Client.Name != "" {
		e.ClientName = rec.Client.Name
	}
	return e
}

// inRange compares calendar days, both bounds inclusive. A record without a
// date never satisfies an active bound.
func inRange(date time.Time, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date.IsZero() {
		return false
	}
	day := calendarDay(date)
	if from != nil && day.Before(calendarDay(*from)) {
		return false
	}
	if to != nil && day.After(calendarDay(*to)) {
		return false
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewHistoryView wraps History for a console view whose filter can change
// while a load is in flight.
func NewHistoryView(h HistoryService, m *metrics.Metrics) *LatestView[models.HistoryFilter, []*models.HistoryEntry] {
	return NewLatestView(h.History, m)
}
