package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func (r *driverRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := queryRaws(ctx, r.db, `SELECT to_jsonb(c) FROM conductor c ORDER BY c.id_conductor`)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, err
	}
	return raws, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	raw, err := queryRaw(ctx, r.db, `SELECT to_jsonb(c) FROM conductor c WHERE c.id_conductor = $1`, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to get driver by id", logger.Int64("id", id), logger.Error(err))
		}
		return nil, err
	}
	return raw, nil
}

func (r *driverRepo) Create(ctx context.Context, fields *models.DriverFields) (models.Raw, error) {
	id, err := insertRow(ctx, r.db, storage.DriverTable, storage.DriverIDColumn, storage.DriverColumns(fields))
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *driverRepo) Update(ctx context.Context, id int64, fields *models.DriverFields) (models.Raw, error) {
	if err := updateRow(ctx, r.db, storage.DriverTable, storage.DriverIDColumn, id, storage.DriverColumns(fields)); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update driver", logger.Int64("id", id), logger.Error(err))
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	if err := deleteRow(ctx, r.db, storage.DriverTable, storage.DriverIDColumn, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to delete driver", logger.Int64("id", id), logger.Error(err))
		}
		return err
	}
	return nil
}
