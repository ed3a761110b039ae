package service

import (
	"context"
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

func TestSettleDebt(t *testing.T) {
	ctx := context.Background()
	_, mgr := newTestManager()

	d, err := mgr.Driver().Create(ctx, &models.DriverFields{
		Name:  ptr("Marta"),
		Phone: ptr("600111222"),
		Debt:  ptr(45.0),
	})
	require.NoError(t, err)

	settled, err := mgr.Ledger().SettleDebt(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, settled.Debt)
	assert.Equal(t, 0.0, *settled.Debt)

	again, err := mgr.Ledger().SettleDebt(ctx, d.ID)
	assert.ErrorIs(t, err, apperr.ErrNoOp)
	assert.True(t, apperr.IsUserError(err))
	require.NotNil(t, again)
	assert.Equal(t, 0.0, *again.Debt)

	_, err = mgr.Ledger().SettleDebt(ctx, 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// driverOnlyStorage serves the ledger from a mocked driver repository.
type driverOnlyStorage struct {
	storage.IStorage
	drivers storage.IDriverStorage
}

func (s driverOnlyStorage) Driver() storage.IDriverStorage { return s.drivers }

func TestSettleDebtNoOpDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	drivers := mocks.NewMockIDriverStorage(ctrl)
	// No Update expectation: gomock fails the test if the ledger writes.
	drivers.EXPECT().GetByID(gomock.Any(), int64(3)).
		Return(models.Raw{"id_conductor": int64(3), "nombre": "Pablo"}, nil)

	ledger := NewDebtLedger(driverOnlyStorage{drivers: drivers}, logger.NewNop(), metrics.New(prometheus.NewRegistry()))
	d, err := ledger.SettleDebt(context.Background(), 3)
	assert.ErrorIs(t, err, apperr.ErrNoOp)
	require.NotNil(t, d)
	assert.Nil(t, d.Debt)
}

func TestDebtViews(t *testing.T) {
	ctx := context.Background()
	_, mgr := newTestManager()

	for _, d := range []struct {
		name, phone string
		debt        float64
	}{
		{"Marta", "600111222", 45},
		{"Pablo", "600333444", 0},
		{"Irene", "600555666", 12.5},
	} {
		_, err := mgr.Driver().Create(ctx, &models.DriverFields{Name: ptr(d.name), Phone: ptr(d.phone), Debt: ptr(d.debt)})
		require.NoError(t, err)
	}

	owing, err := mgr.Ledger().WithDebt(ctx)
	require.NoError(t, err)
	assert.Len(t, owing, 2)

	settled, err := mgr.Ledger().WithoutDebt(ctx)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, "Pablo", settled[0].Name)
}
