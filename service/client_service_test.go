package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/storage"
	"taxidispatch/storage/mocks"
)

type clientOnlyStorage struct {
	storage.IStorage
	clients storage.IClientStorage
}

func (s clientOnlyStorage) Client() storage.IClientStorage { return s.clients }

func TestClientListEnrichmentIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	clients := mocks.NewMockIClientStorage(ctrl)
	clients.EXPECT().GetAll(gomock.Any()).Return([]models.Raw{
		{"id_cliente": int64(1), "nombre": "Ana", "telefono": "911222333"},
		{"id_cliente": int64(2), "nombre": "Luis", "telefono": "622333444"},
	}, nil)
	clients.EXPECT().CountRecords(gomock.Any(), int64(1), models.KindService).Return(0, errors.New("timeout"))
	clients.EXPECT().CountRecords(gomock.Any(), int64(1), models.KindReservation).Return(2, nil)
	clients.EXPECT().CountRecords(gomock.Any(), int64(2), models.KindService).Return(3, nil)
	clients.EXPECT().CountRecords(gomock.Any(), int64(2), models.KindReservation).Return(1, nil)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	stg := clientOnlyStorage{clients: clients}
	svc := NewClientService(stg, NewClientResolver(clients, logger.NewNop(), m), logger.NewNop(), m, 2)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].ServiceCount)
	assert.Equal(t, 2, got[0].ReservationCount)
	assert.Equal(t, 3, got[1].ServiceCount)
	assert.Equal(t, 1, got[1].ReservationCount)
	assert.Equal(t, 4, got[1].TotalRecords())
	assert.Equal(t, 1.0, counterValue(reg, "taxidispatch_enrichment_failures_total", map[string]string{"kind": "service"}))
}

func TestClientCRUD(t *testing.T) {
	ctx := context.Background()
	_, mgr := newTestManager()
	clients := mgr.Client()

	ana, err := clients.Create(ctx, &models.ClientFields{Name: ptr(" Ana "), Phone: ptr("911-222-333")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Name)

	t.Run("duplicate phone is rejected", func(t *testing.T) {
		_, err := clients.Create(ctx, &models.ClientFields{Name: ptr("Otra"), Phone: ptr("911 222 333")})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("counts follow records", func(t *testing.T) {
		_, err := mgr.Services().Create(ctx, &models.RecordInput{
			Origin: ptr("Sol"), Destination: ptr("Retiro"), Price: ptr(10.0),
			Date: ptr("2024-01-10"), ClientID: ptr(ana.ID),
		})
		require.NoError(t, err)

		got, err := clients.Get(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ServiceCount)
		assert.Equal(t, 0, got.ReservationCount)
	})

	t.Run("phone taken by another client", func(t *testing.T) {
		luis, err := clients.Create(ctx, &models.ClientFields{Name: ptr("Luis"), Phone: ptr("622333444")})
		require.NoError(t, err)
		_, err = clients.Update(ctx, luis.ID, &models.ClientFields{Phone: ptr("911222333")})
		assert.ErrorIs(t, err, apperr.ErrValidation)

		updated, err := clients.Update(ctx, luis.ID, &models.ClientFields{Name: ptr("Luis G.")})
		require.NoError(t, err)
		assert.Equal(t, "Luis G.", updated.Name)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, clients.Delete(ctx, ana.ID))
		assert.ErrorIs(t, clients.Delete(ctx, ana.ID), apperr.ErrNotFound)
	})
}
