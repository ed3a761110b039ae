package memory

import (
	"context"

	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type clientRepo struct {
	s *Store
}

func (r *clientRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Raw, 0, len(r.s.clients.rows))
	for _, id := range r.s.clients.sortedIDs() {
		out = append(out, clone(r.s.clients.rows[id]))
	}
	return out, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.clients.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(row), nil
}

func (r *clientRepo) Create(ctx context.Context, fields *models.ClientFields) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.clients.seq++
	id := r.s.clients.seq
	row := models.Raw{
		storage.ClientIDColumn: id,
		"fecha_creacion":       r.s.now().UTC(),
		"fecha_actualizacion":  nil,
	}
	merge(row, storage.ClientColumns(fields))
	r.s.clients.rows[id] = row
	return clone(row), nil
}

func (r *clientRepo) Update(ctx context.Context, id int64, fields *models.ClientFields) (models.Raw, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.clients.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	merge(row, storage.ClientColumns(fields))
	row["fecha_actualizacion"] = r.s.now().UTC()
	return clone(row), nil
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.clients.rows, id)
	r.s.detach(storage.ClientIDColumn, id)
	return nil
}

func (r *clientRepo) CountRecords(ctx context.Context, clientID int64, kind models.Kind) (int, error) {
	if err := ctxErr(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.records[kind]
	if !ok {
		return 0, nil
	}
	n := 0
	for _, row := range t.rows {
		if fk, ok := row[storage.ClientIDColumn].(int64); ok && fk == clientID {
			n++
		}
	}
	return n, nil
}
