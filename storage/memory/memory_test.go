package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func ptr[T any](v T) *T { return &v }

func (s *MemoryStoreSuite) TestRecordLifecycle() {
	repo := s.store.Record(models.KindService)

	s.Run("create assigns ids and writes columns", func() {
		date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		row, err := repo.Create(s.ctx, &models.RecordFields{
			Origin:      ptr("Atocha"),
			Destination: ptr("Barajas"),
			Price:       ptr(45.0),
			Surcharge:   ptr(4.5),
			Date:        &date,
		})
		s.Require().NoError(err)
		s.Equal(int64(1), row["id_servicio"])
		s.Equal("2024-01-10", row["fecha"])
		s.Equal(4.5, row["precio_10"])
	})

	s.Run("update is partial", func() {
		row, err := repo.Update(s.ctx, 1, &models.RecordFields{Destination: ptr("Chamartín")})
		s.Require().NoError(err)
		s.Equal("Atocha", row["origen"])
		s.Equal("Chamartín", row["destino"])
	})

	s.Run("delete twice reports not found", func() {
		s.Require().NoError(repo.Delete(s.ctx, 1))
		s.ErrorIs(repo.Delete(s.ctx, 1), storage.ErrNotFound)

		_, err := repo.GetByID(s.ctx, 1)
		s.ErrorIs(err, storage.ErrNotFound)
	})

	s.Run("update of missing row reports not found", func() {
		_, err := repo.Update(s.ctx, 99, &models.RecordFields{Origin: ptr("x")})
		s.ErrorIs(err, storage.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestRelationsAreEmbedded() {
	driver, err := s.store.Driver().Create(s.ctx, &models.DriverFields{Name: ptr("Luis"), Phone: ptr("600")})
	s.Require().NoError(err)
	client, err := s.store.Client().Create(s.ctx, &models.ClientFields{Name: ptr("Ana"), Phone: ptr("911")})
	s.Require().NoError(err)

	driverID := driver[storage.DriverIDColumn].(int64)
	clientID := client[storage.ClientIDColumn].(int64)

	repo := s.store.Record(models.KindReservation)
	row, err := repo.Create(s.ctx, &models.RecordFields{
		Origin:      ptr("Sol"),
		Destination: ptr("Retiro"),
		Price:       ptr(10.0),
		DriverID:    &driverID,
		ClientID:    &clientID,
	})
	s.Require().NoError(err)

	s.Run("driver as one-element list, client as object", func() {
		s.Require().Len(row["conductor"], 1)
		s.Equal("Ana", row["cliente"].(models.Raw)["nombre"])
	})

	s.Run("filter by driver", func() {
		rows, err := repo.GetByDriver(s.ctx, driverID)
		s.Require().NoError(err)
		s.Len(rows, 1)

		rows, err = repo.GetByDriver(s.ctx, driverID+1)
		s.Require().NoError(err)
		s.Empty(rows)
	})

	s.Run("client counts", func() {
		n, err := s.store.Client().CountRecords(s.ctx, clientID, models.KindReservation)
		s.Require().NoError(err)
		s.Equal(1, n)

		n, err = s.store.Client().CountRecords(s.ctx, clientID, models.KindService)
		s.Require().NoError(err)
		s.Equal(0, n)
	})

	s.Run("deleting the driver detaches records", func() {
		s.Require().NoError(s.store.Driver().Delete(s.ctx, driverID))
		row, err := repo.GetByID(s.ctx, row["id_reserva"].(int64))
		s.Require().NoError(err)
		s.Nil(row[storage.DriverIDColumn])
		s.NotContains(row, "conductor")
	})
}

func (s *MemoryStoreSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.store.Client().GetAll(ctx)
	s.ErrorIs(err, context.Canceled)
}
