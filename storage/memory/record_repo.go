package memory

import (
	"context"

	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type recordRepo struct {
	s    *Store
	kind models.Kind
	t    storage.Table
}

func (r *recordRepo) table() *table {
	return r.s.records[r.kind]
}

// view returns a copy of row with its relations embedded. Callers hold the lock.
func (r *recordRepo) view(row models.Raw) models.Raw {
	out := clone(row)
	if id, ok := row[storage.DriverIDColumn].(int64); ok {
		if d, ok := r.s.drivers.rows[id]; ok {
			out["conductor"] = []interface{}{clone(d)}
		}
	}
	if id, ok := row[storage.ClientIDColumn].(int64); ok {
		if c, ok := r.s.clients.rows[id]; ok {
			out["cliente"] = clone(c)
		}
	}
	return out
}

func (r *recordRepo) list(match func(models.Raw) bool) []models.Raw {
	t := r.table()
	out := make([]models.Raw, 0, len(t.rows))
	for _, id := range t.sortedIDs() {
		row := t.rows[id]
		if match == nil || match(row) {
			out = append(out, r.view(row))
		}
	}
	return out
}

func (r *recordRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.list(nil), nil
}

func (r *recordRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.table().rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return r.view(row), nil
}

func (r *recordRepo) GetByDriver(ctx context.Context, driverID int64) ([]models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.list(func(row models.Raw) bool {
		fk, ok := row[storage.DriverIDColumn].(int64)
		return ok && fk == driverID
	}), nil
}

func (r *recordRepo) Create(ctx context.Context, fields *models.RecordFields) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := r.table()
	t.seq++
	id := t.seq
	row := models.Raw{
		r.t.IDColumn:     id,
		"fecha_creacion": r.s.now().UTC(),
	}
	merge(row, storage.RecordColumns(r.t, fields))
	t.rows[id] = row
	return r.view(row), nil
}

func (r *recordRepo) Update(ctx context.Context, id int64, fields *models.RecordFields) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.table().rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	merge(row, storage.RecordColumns(r.t, fields))
	return r.view(row), nil
}

func (r *recordRepo) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := r.table()
	if _, ok := t.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}
