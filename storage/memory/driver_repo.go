package memory

import (
	"context"

	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type driverRepo struct {
	s *Store
}

func (r *driverRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Raw, 0, len(r.s.drivers.rows))
	for _, id := range r.s.drivers.sortedIDs() {
		out = append(out, clone(r.s.drivers.rows[id]))
	}
	return out, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.drivers.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(row), nil
}

func (r *driverRepo) Create(ctx context.Context, fields *models.DriverFields) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.drivers.seq++
	id := r.s.drivers.seq
	row := models.Raw{
		storage.DriverIDColumn: id,
		"deuda":                0.0,
		"dinero_generado":      0.0,
		"eurotaxi":             false,
	}
	merge(row, storage.DriverColumns(fields))
	r.s.drivers.rows[id] = row
	return clone(row), nil
}

func (r *driverRepo) Update(ctx context.Context, id int64, fields *models.DriverFields) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.drivers.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	merge(row, storage.DriverColumns(fields))
	return clone(row), nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.drivers.rows, id)
	r.s.detach(storage.DriverIDColumn, id)
	return nil
}
