package supabase

import (
	"context"
	"time"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type driverRepo struct {
	table
	log logger.ILogger
}

func (r *driverRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := r.list(ctx, "", "")
	if err != nil {
		logFailure(r.log, "failed to list drivers", err)
	}
	return raws, err
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	raw, err := r.get(ctx, id)
	if err != nil {
		logFailure(r.log, "failed to get driver by id", err, logger.Int64("id", id))
	}
	return raw, err
}

func (r *driverRepo) Create(ctx context.Context, fields *models.DriverFields) (models.Raw, error) {
	id, err := r.insert(ctx, storage.DriverColumns(fields))
	if err != nil {
		logFailure(r.log, "failed to create driver", err)
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *driverRepo) Update(ctx context.Context, id int64, fields *models.DriverFields) (models.Raw, error) {
	if err := r.update(ctx, id, storage.DriverColumns(fields)); err != nil {
		logFailure(r.log, "failed to update driver", err, logger.Int64("id", id))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	err := r.delete(ctx, id)
	if err != nil {
		logFailure(r.log, "failed to delete driver", err, logger.Int64("id", id))
	}
	return err
}

type clientRepo struct {
	table
	log logger.ILogger
}

func (r *clientRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := r.list(ctx, "", "")
	if err != nil {
		logFailure(r.log, "failed to list clients", err)
	}
	return raws, err
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	raw, err := r.get(ctx, id)
	if err != nil {
		logFailure(r.log, "failed to get client by id", err, logger.Int64("id", id))
	}
	return raw, err
}

func (r *clientRepo) Create(ctx context.Context, fields *models.ClientFields) (models.Raw, error) {
	id, err := r.insert(ctx, storage.ClientColumns(fields))
	if err != nil {
		logFailure(r.log, "failed to create client", err)
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *clientRepo) Update(ctx context.Context, id int64, fields *models.ClientFields) (models.Raw, error) {
	cols := storage.ClientColumns(fields)
	if len(cols) > 0 {
		cols["fecha_actualizacion"] = time.Now().UTC().Format(time.RFC3339)
	}
	if err := r.update(ctx, id, cols); err != nil {
		logFailure(r.log, "failed to update client", err, logger.Int64("id", id))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	err := r.delete(ctx, id)
	if err != nil {
		logFailure(r.log, "failed to delete client", err, logger.Int64("id", id))
	}
	return err
}

func (r *clientRepo) CountRecords(ctx context.Context, clientID int64, kind models.Kind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t := storage.RecordTable(kind)
	_, count, err := r.s.rest(ctx).From(t.Name).
		Select(t.IDColumn, "exact", true).
		Eq(storage.ClientIDColumn, idText(clientID)).
		Execute()
	if err != nil {
		logFailure(r.log, "failed to count client records", err,
			logger.Int64("client_id", clientID), logger.String("kind", string(kind)))
		return 0, err
	}
	return int(count), nil
}

type recordRepo struct {
	table
	t   storage.Table
	log logger.ILogger
}

func (r *recordRepo) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := r.list(ctx, "", "")
	if err != nil {
		logFailure(r.log, "failed to list records", err, logger.String("table", r.t.Name))
	}
	return raws, err
}

func (r *recordRepo) GetByID(ctx context.Context, id int64) (models.Raw, error) {
	raw, err := r.get(ctx, id)
	if err != nil {
		logFailure(r.log, "failed to get record by id", err, logger.String("table", r.t.Name), logger.Int64("id", id))
	}
	return raw, err
}

func (r *recordRepo) GetByDriver(ctx context.Context, driverID int64) ([]models.Raw, error) {
	raws, err := r.list(ctx, storage.DriverIDColumn, idText(driverID))
	if err != nil {
		logFailure(r.log, "failed to list driver records", err, logger.String("table", r.t.Name), logger.Int64("driver_id", driverID))
	}
	return raws, err
}

func (r *recordRepo) Create(ctx context.Context, fields *models.RecordFields) (models.Raw, error) {
	id, err := r.insert(ctx, storage.RecordColumns(r.t, fields))
	if err != nil {
		logFailure(r.log, "failed to create record", err, logger.String("table", r.t.Name))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *recordRepo) Update(ctx context.Context, id int64, fields *models.RecordFields) (models.Raw, error) {
	if err := r.update(ctx, id, storage.RecordColumns(r.t, fields)); err != nil {
		logFailure(r.log, "failed to update record", err, logger.String("table", r.t.Name), logger.Int64("id", id))
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *recordRepo) Delete(ctx context.Context, id int64) error {
	err := r.delete(ctx, id)
	if err != nil {
		logFailure(r.log, "failed to delete record", err, logger.String("table", r.t.Name), logger.Int64("id", id))
	}
	return err
}
