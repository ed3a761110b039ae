package service

import (
	"context"
	"errors"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/reqctx"
	"taxidispatch/storage"
)

type IServiceManager interface {
	Driver() DriverService
	Client() ClientService
	Records(kind models.Kind) RecordService
	Services() RecordService
	Reservations() RecordService
	Ledger() DebtLedger
	History() HistoryService
}

type Options struct {
	// EnrichConcurrency bounds concurrent per-client count lookups.
	EnrichConcurrency int
}

type service struct {
	driverService      DriverService
	clientService      ClientService
	serviceRecords     RecordService
	reservationRecords RecordService
	ledger             DebtLedger
	history            HistoryService
}

func New(stg storage.IStorage, log logger.ILogger, m *metrics.Metrics, opts Options) IServiceManager {
	resolver := NewClientResolver(stg.Client(), log, m)
	services := NewRecordService(models.KindService, stg.Record(models.KindService), resolver, log, m)
	reservations := NewRecordService(models.KindReservation, stg.Record(models.KindReservation), resolver, log, m)

	return &service{
		driverService:      NewDriverService(stg, log),
		clientService:      NewClientService(stg, resolver, log, m, opts.EnrichConcurrency),
		serviceRecords:     services,
		reservationRecords: reservations,
		ledger:             NewDebtLedger(stg, log, m),
		history:            NewHistoryService(services, reservations),
	}
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Client() ClientService {
	return s.clientService
}

func (s *service) Records(kind models.Kind) RecordService {
	if kind == models.KindReservation {
		return s.reservationRecords
	}
	return s.serviceRecords
}

func (s *service) Services() RecordService {
	return s.serviceRecords
}

func (s *service) Reservations() RecordService {
	return s.reservationRecords
}

func (s *service) Ledger() DebtLedger {
	return s.ledger
}

func (s *service) History() HistoryService {
	return s.history
}

func reqFields(ctx context.Context, fields ...logger.Field) []logger.Field {
	return append(reqctx.Fields(ctx), fields...)
}

// storeErr maps a storage failure onto the error taxonomy.
func storeErr(err error, what string, id int64) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("%s %d does not exist", what, id)
	}
	return apperr.Store(err, "%s %d", what, id)
}
