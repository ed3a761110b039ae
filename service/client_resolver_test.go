package service

import (
	"context"
	"errors"
	"sync"
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
	"taxidispatch/storage/memory"
	"taxidispatch/storage/mocks"
)

func newResolver(stg storage.IClientStorage) *ClientResolver {
	return NewClientResolver(stg, logger.NewNop(), metrics.New(prometheus.NewRegistry()))
}

func TestResolveMatchesPhoneVariants(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	r := newResolver(stg.Client())

	first, err := r.Resolve(ctx, "Ana", "911222333", nil)
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "Ana", "911-222-333", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	all, err := stg.Client().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolveRefreshesNameOnly(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	r := newResolver(stg.Client())

	id, err := r.Resolve(ctx, "Ana", " 911 222 333 ", nil)
	require.NoError(t, err)
	again, err := r.Resolve(ctx, "Ana María", "911-222-333", nil)
	require.NoError(t, err)
	require.Equal(t, id, again)

	raw, err := stg.Client().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", raw["nombre"])
	assert.Equal(t, "911 222 333", raw["telefono"])
}

func TestResolveExplicitID(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No storage expectations: an explicit id is trusted as is.
	r := newResolver(mocks.NewMockIClientStorage(ctrl))

	id, err := r.Resolve(context.Background(), "", "", ptr(int64(7)))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = r.Resolve(context.Background(), "", "", ptr(int64(0)))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestResolveValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newResolver(mocks.NewMockIClientStorage(ctrl))

	tests := []struct {
		name, client, phone string
	}{
		{"blank name", "  ", "911222333"},
		{"blank phone", "Ana", "   "},
		{"phone without digits", "Ana", "--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.client, tt.phone, nil)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
		})
	}
}

func TestResolveStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	stg := mocks.NewMockIClientStorage(ctrl)
	stg.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("connection refused"))
	r := newResolver(stg)

	_, err := r.Resolve(context.Background(), "Ana", "911222333", nil)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeStore))
	assert.Contains(t, apperr.UserMessage(err), "could not complete")
}

func TestResolveCreatesOnMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	stg := mocks.NewMockIClientStorage(ctrl)
	gomock.InOrder(
		stg.EXPECT().GetAll(gomock.Any()).Return([]models.Raw{
			{"id_cliente": int64(1), "nombre": "Luis", "telefono": "600000000"},
		}, nil),
		stg.EXPECT().Create(gomock.Any(), &models.ClientFields{Name: ptr("Ana"), Phone: ptr("911222333")}).
			Return(models.Raw{"id_cliente": int64(2), "nombre": "Ana", "telefono": "911222333"}, nil),
	)
	r := newResolver(stg)

	id, err := r.Resolve(context.Background(), " Ana ", "911222333", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

// racingClients makes concurrent resolutions all finish their lookup before
// any of them creates.
type racingClients struct {
	storage.IClientStorage
	lookups sync.WaitGroup
}

func (r *racingClients) GetAll(ctx context.Context) ([]models.Raw, error) {
	raws, err := r.IClientStorage.GetAll(ctx)
	r.lookups.Done()
	r.lookups.Wait()
	return raws, err
}

func TestResolveConcurrentNewPhoneMayDuplicate(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	racing := &racingClients{IClientStorage: stg.Client()}
	racing.lookups.Add(2)
	r := newResolver(racing)

	ids := make([]int64, 2)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := r.Resolve(ctx, "Ana", "911222333", nil)
			assert.NoError(t, err)
			ids[i] = id
		}()
	}
	wg.Wait()

	// Without a uniqueness constraint both submissions create a client.
	assert.NotEqual(t, ids[0], ids[1])
	all, err := stg.Client().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
