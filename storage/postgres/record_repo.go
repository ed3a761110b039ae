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

type recordRepo struct {
	db      *pgxpool.Pool
	log     logger.ILogger
	t       storage.Table
	selectQ string
}

func NewRecordRepo(db *pgxpool.Pool, log logger.ILogger, kind models.Kind) storage.IRecordStorage {
	t := storage.RecordTable(kind)
	// The driver is embedded as a one-element array and the client as an
	// object, matching the hosted backend's relation syntax.
	selectQ := fmt.Sprintf(`
		SELECT to_jsonb(r) || jsonb_build_object(
			'conductor', CASE WHEN c.id_conductor IS NULL THEN NULL ELSE jsonb_build_array(to_jsonb(c)) END,
			'cliente', CASE WHEN cl.id_cliente IS NULL THEN NULL ELSE to_jsonb(cl) END
		)
		FROM %s r
		LEFT JOIN conductor c ON c.id_conductor = r.id_conductor
		LEFT JOIN cliente cl ON cl.id_cliente = r.id_cliente`, t.Name)

	return &recordRepo{db: db, log: log.With(logger.String("table", t.Name)), t: t, selectQ: selectQ}
}

func (r *recordRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := queryRaws(ctx, r.db, r.selectQ+fmt.Sprintf(" ORDER BY r.%s", r.t.IDColumn))
	if err != nil {
		r.log.Error("failed to list records", logger.Error(err))
		return nil, err
	}
	return raws, nil
}

func (r *recordRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	raw, err := queryRaw(ctx, r.db, r.selectQ+fmt.Sprintf(" WHERE r.%s = $1", r.t.IDColumn), id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get record by id", logger.Int64("id", id), logger.Error(err))
		}
		return nil, err
	}
	return raw, nil
}

func (r *recordRepo) GetByDriver(ctx context.Context, driverID int64) ([]models.Raw, error) {
	query := r.selectQ + fmt.Sprintf(" WHERE r.%s = $1 ORDER BY r.%s", storage.DriverIDColumn, r.t.IDColumn)
	raws, err := queryRaws(ctx, r.db, query, driverID)
	if err != nil {
		r.log.Error("failed to list driver records", logger.Int64("driver_id", driverID), logger.Error(err))
		return nil, err
	}
	return raws, nil
}

func (r *recordRepo) Create(ctx context.Context, fields *models.RecordFields) (models.Raw, error) {
	id, err := insertRow(ctx, r.db, r.t.Name, r.t.IDColumn, storage.RecordColumns(r.t, fields))
	if err != nil {
		r.log.Error("failed to create record", logger.Error(err))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *recordRepo) Update(ctx context.Context, id int64, fields *models.RecordFields) (models.Raw, error) {
	if err := updateRow(ctx, r.db, r.t.Name, r.t.IDColumn, id, storage.RecordColumns(r.t, fields)); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update record", logger.Int64("id", id), logger.Error(err))
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *recordRepo) Delete(ctx context.Context, id int64) error {
	if err := deleteRow(ctx, r.db, r.t.Name, r.t.IDColumn, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to delete record", logger.Int64("id", id), logger.Error(err))
		}
		return err
	}
	return nil
}
