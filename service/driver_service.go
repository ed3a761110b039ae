package service

import (
	"context"
	"math"
	"strings"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/normalizer"
	"taxidispatch/storage"
)

type DriverService interface {
	List(ctx context.Context) ([]*models.Driver, error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	Create(ctx context.Context, fields *models.DriverFields) (*models.Driver, error)
	Update(ctx context.Context, id int64, fields *models.DriverFields) (*models.Driver, error)
	Delete(ctx context.Context, id int64) error
}

type driverService struct {
	stg storage.IDriverStorage
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, log logger.ILogger) DriverService {
	return &driverService{
		stg: stg.Driver(),
		log: log,
	}
}

func (s *driverService) List(ctx context.Context) ([]*models.Driver, error) {
	raws, err := s.stg.GetAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "list drivers")
	}
	return normalizer.Drivers(raws)
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	raw, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "driver", id)
	}
	return normalizer.Driver(raw)
}

func (s *driverService) Create(ctx context.Context, fields *models.DriverFields) (*models.Driver, error) {
	if fields == nil || fields.Name == nil || fields.Phone == nil {
		return nil, apperr.Validation("driver name and phone are required")
	}
	f, err := checkDriverFields(fields)
	if err != nil {
		return nil, err
	}
	zero := 0.0
	if f.Debt == nil {
		f.Debt = &zero
	}
	if f.Revenue == nil {
		f.Revenue = &zero
	}

	raw, err := s.stg.Create(ctx, f)
	if err != nil {
		return nil, apperr.Store(err, "create driver")
	}
	d, err := normalizer.Driver(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("driver created", append(reqFields(ctx), logger.Int64("driver_id", d.ID))...)
	return d, nil
}

func (s *driverService) Update(ctx context.Context, id int64, fields *models.DriverFields) (*models.Driver, error) {
	if fields == nil {
		return s.Get(ctx, id)
	}
	f, err := checkDriverFields(fields)
	if err != nil {
		return nil, err
	}
	if *f == (models.DriverFields{}) {
		return s.Get(ctx, id)
	}

	raw, err := s.stg.Update(ctx, id, f)
	if err != nil {
		return nil, storeErr(err, "driver", id)
	}
	d, err := normalizer.Driver(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("driver updated", append(reqFields(ctx), logger.Int64("driver_id", id))...)
	return d, nil
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return storeErr(err, "driver", id)
	}
	s.log.Info("driver deleted", append(reqFields(ctx), logger.Int64("driver_id", id))...)
	return nil
}

// checkDriverFields trims text and rejects negative money or seat values.
func checkDriverFields(in *models.DriverFields) (*models.DriverFields, error) {
	f := *in
	if f.Name != nil {
		name := strings.TrimSpace(*f.Name)
		if name == "" {
			return nil, apperr.Validation("driver name must not be blank")
		}
		f.Name = &name
	}
	if f.Phone != nil {
		phone := strings.TrimSpace(*f.Phone)
		if normalizer.PhoneKey(phone) == "" {
			return nil, apperr.Validation("driver phone must not be blank")
		}
		f.Phone = &phone
	}
	for _, m := range []struct {
		name string
		v    *float64
	}{{"debt", f.Debt}, {"revenue", f.Revenue}} {
		if m.v != nil && (*m.v < 0 || math.IsNaN(*m.v) || math.IsInf(*m.v, 0)) {
			return nil, apperr.Validation("driver %s must be a non-negative amount", m.name)
		}
	}
	if (f.Seats != nil && *f.Seats < 0) || (f.ChildSeats != nil && *f.ChildSeats < 0) {
		return nil, apperr.Validation("seat counts must not be negative")
	}
	return &f, nil
}
