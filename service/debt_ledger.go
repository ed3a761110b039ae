package service

import (
	"context"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/normalizer"
	"taxidispatch/storage"
)

// DebtLedger reads and zeroes driver debt. Accrual happens outside this layer.
type DebtLedger interface {
	// SettleDebt zeroes the driver's debt. When there is nothing to settle it
	// returns the unchanged driver together with an apperr.ErrNoOp error.
	SettleDebt(ctx context.Context, driverID int64) (*models.Driver, error)
	WithDebt(ctx context.Context) ([]*models.Driver, error)
	WithoutDebt(ctx context.Context) ([]*models.Driver, error)
}

type debtLedger struct {
	stg     storage.IDriverStorage
	log     logger.ILogger
	metrics *metrics.Metrics
}

func NewDebtLedger(stg storage.IStorage, log logger.ILogger, m *metrics.Metrics) DebtLedger {
	return &debtLedger{stg: stg.Driver(), log: log, metrics: m}
}

func (l *debtLedger) SettleDebt(ctx context.Context, driverID int64) (*models.Driver, error) {
	raw, err := l.stg.GetByID(ctx, driverID)
	if err != nil {
		return nil, storeErr(err, "driver", driverID)
	}
	d, err := normalizer.Driver(raw)
	if err != nil {
		return nil, err
	}
	if !d.HasDebt() {
		return d, apperr.NoOp("driver %d has no outstanding debt", driverID)
	}
	owed := *d.Debt

	zero := 0.0
	raw, err = l.stg.Update(ctx, driverID, &models.DriverFields{Debt: &zero})
	if err != nil {
		return nil, storeErr(err, "driver", driverID)
	}
	if d, err = normalizer.Driver(raw); err != nil {
		return nil, err
	}

	l.metrics.ObserveSettlement(owed)
	l.log.Info("driver debt settled",
		append(reqFields(ctx), logger.Int64("driver_id", driverID), logger.Float64("amount", owed))...)
	return d, nil
}

func (l *debtLedger) WithDebt(ctx context.Context) ([]*models.Driver, error) {
	return l.filter(ctx, func(d *models.Driver) bool { return d.HasDebt() })
}

// WithoutDebt lists drivers whose debt is known to be zero.
func (l *debtLedger) WithoutDebt(ctx context.Context) ([]*models.Driver, error) {
	return l.filter(ctx, func(d *models.Driver) bool { return d.Debt != nil && *d.Debt == 0 })
}

func (l *debtLedger) filter(ctx context.Context, keep func(*models.Driver) bool) ([]*models.Driver, error) {
	raws, err := l.stg.GetAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "list drivers")
	}
	drivers, err := normalizer.Drivers(raws)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out, nil
}
