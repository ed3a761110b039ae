package storage

import (
	"context"
	"errors"

	"taxidispatch/pkg/models"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks taxidispatch/storage IDriverStorage,IClientStorage,IRecordStorage

// ErrNotFound is returned (optionally wrapped) when a targeted row does not exist.
var ErrNotFound = errors.New("not found")

// IStorage is the request interface to the external store. Reads return raw
// payloads; only the normalizer interprets their shape.
type IStorage interface {
	Driver() IDriverStorage
	Client() IClientStorage
	Record(kind models.Kind) IRecordStorage
	Close()
}

type IDriverStorage interface {
	GetAll(ctx context.Context) ([]models.Raw, error)
	GetByID(ctx context.Context, id int64) (models.Raw, error)
	Create(ctx context.Context, fields *models.DriverFields) (models.Raw, error)
	Update(ctx context.Context, id int64, fields *models.DriverFields) (models.Raw, error)
	Delete(ctx context.Context, id int64) error
}

type IClientStorage interface {
	GetAll(ctx context.Context) ([]models.Raw, error)
	GetByID(ctx context.Context, id int64) (models.Raw, error)
	Create(ctx context.Context, fields *models.ClientFields) (models.Raw, error)
	Update(ctx context.Context, id int64, fields *models.ClientFields) (models.Raw, error)
	Delete(ctx context.Context, id int64) error
	CountRecords(ctx context.Context, clientID int64, kind models.Kind) (int, error)
}

type IRecordStorage interface {
	GetAll(ctx context.Context) ([]models.Raw, error)
	GetByID(ctx context.Context, id int64) (models.Raw, error)
	GetByDriver(ctx context.Context, driverID int64) ([]models.Raw, error)
	Create(ctx context.Context, fields *models.RecordFields) (models.Raw, error)
	Update(ctx context.Context, id int64, fields *models.RecordFields) (models.Raw, error)
	Delete(ctx context.Context, id int64) error
}
