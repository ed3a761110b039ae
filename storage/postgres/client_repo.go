package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type clientRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewClientRepo(db *pgxpool.Pool, log logger.ILogger) storage.IClientStorage {
	return &clientRepo{db: db, log: log}
}

func (r *clientRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := queryRaws(ctx, r.db, `SELECT to_jsonb(c) FROM cliente c ORDER BY c.id_cliente`)
	if err != nil {
		r.log.Error("failed to list clients", logger.Error(err))
		return nil, err
	}
	return raws, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	raw, err := queryRaw(ctx, r.db, `SELECT to_jsonb(c) FROM cliente c WHERE c.id_cliente = $1`, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get client by id", logger.Int64("id", id), logger.Error(err))
		}
		return nil, err
	}
	return raw, nil
}

func (r *clientRepo) Create(ctx context.Context, fields *models.ClientFields) (models.Raw, error) {
	id, err := insertRow(ctx, r.db, storage.ClientTable, storage.ClientIDColumn, storage.ClientColumns(fields))
	if err != nil {
		r.log.Error("failed to create client", logger.Error(err))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *clientRepo) Update(ctx context.Context, id int64, fields *models.ClientFields) (models.Raw, error) {
	err := updateRow(ctx, r.db, storage.ClientTable, storage.ClientIDColumn, id,
		storage.ClientColumns(fields), "fecha_actualizacion = NOW()")
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update client", logger.Int64("id", id), logger.Error(err))
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	if err := deleteRow(ctx, r.db, storage.ClientTable, storage.ClientIDColumn, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to delete client", logger.Int64("id", id), logger.Error(err))
		}
		return err
	}
	return nil
}

func (r *clientRepo) CountRecords(ctx context.Context, clientID int64, kind models.Kind) (int, error) {
	t := storage.RecordTable(kind)
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", t.Name, storage.ClientIDColumn)
	if err := r.db.QueryRow(ctx, query, clientID).Scan(&n); err != nil {
		r.log.Error("failed to count client records",
			logger.Int64("client_id", clientID), logger.String("kind", string(kind)), logger.Error(err))
		return 0, err
	}
	return n, nil
}
