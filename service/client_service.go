package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/normalizer"
	"taxidispatch/storage"
)

type ClientService interface {
	// List returns every client with its service and reservation counts.
	List(ctx context.Context) ([]*models.Client, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, fields *models.ClientFields) (*models.Client, error)
	Update(ctx context.Context, id int64, fields *models.ClientFields) (*models.Client, error)
	Delete(ctx context.Context, id int64) error
}

type clientService struct {
	stg         storage.IClientStorage
	resolver    *ClientResolver
	log         logger.ILogger
	metrics     *metrics.Metrics
	concurrency int
}

func NewClientService(stg storage.IStorage, resolver *ClientResolver, log logger.ILogger, m *metrics.Metrics, concurrency int) ClientService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &clientService{
		stg:         stg.Client(),
		resolver:    resolver,
		log:         log,
		metrics:     m,
		concurrency: concurrency,
	}
}

func (s *clientService) List(ctx context.Context) ([]*models.Client, error) {
	raws, err := s.stg.GetAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "list clients")
	}
	clients, err := normalizer.Clients(raws)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, clients)
	return clients, nil
}

// enrich fills the per-client record counts concurrently. A failed count
// degrades to 0 for that client and kind only; enrich never fails.
func (s *clientService) enrich(ctx context.Context, clients []*models.Client) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, c := range clients {
		g.Go(func() error {
			c.ServiceCount = s.count(ctx, c.ID, models.KindService)
			return nil
		})
		g.Go(func() error {
			c.ReservationCount = s.count(ctx, c.ID, models.KindReservation)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *clientService) count(ctx context.Context, clientID int64, kind models.Kind) int {
	n, err := s.stg.CountRecords(ctx, clientID, kind)
	if err != nil {
		s.metrics.IncEnrichmentFailure(string(kind))
		s.log.Warning("client record count unavailable",
			append(reqFields(ctx),
				logger.Int64("client_id", clientID),
				logger.String("kind", string(kind)),
				logger.Error(err))...)
		return 0
	}
	return n
}

func (s *clientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	raw, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "client", id)
	}
	c, err := normalizer.Client(raw)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, []*models.Client{c})
	return c, nil
}

// Create registers a client. A phone that already belongs to a client is
// rejected rather than merged.
func (s *clientService) Create(ctx context.Context, fields *models.ClientFields) (*models.Client, error) {
	if fields == nil || fields.Name == nil || fields.Phone == nil {
		return nil, apperr.Validation("client name and phone are required")
	}
	name, phone := strings.TrimSpace(*fields.Name), strings.TrimSpace(*fields.Phone)
	if name == "" || normalizer.PhoneKey(phone) == "" {
		return nil, apperr.Validation("client name and phone must not be blank")
	}

	existing, err := s.resolver.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("phone %s already belongs to client %d", phone, existing.ID)
	}

	raw, err := s.stg.Create(ctx, &models.ClientFields{Name: &name, Phone: &phone})
	if err != nil {
		return nil, apperr.Store(err, "create client")
	}
	c, err := normalizer.Client(raw)
	if err != nil {
		return nil, err
	}
	s.metrics.IncClientsCreated()
	s.log.Info("client created", append(reqFields(ctx), logger.Int64("client_id", c.ID))...)
	return c, nil
}

func (s *clientService) Update(ctx context.Context, id int64, fields *models.ClientFields) (*models.Client, error) {
	if fields == nil || (fields.Name == nil && fields.Phone == nil) {
		return s.Get(ctx, id)
	}
	f := &models.ClientFields{}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperr.Validation("client name must not be blank")
		}
		f.Name = &name
	}
	if fields.Phone != nil {
		phone := strings.TrimSpace(*fields.Phone)
		if normalizer.PhoneKey(phone) == "" {
			return nil, apperr.Validation("client phone must not be blank")
		}
		existing, err := s.resolver.FindByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Validation("phone %s already belongs to client %d", phone, existing.ID)
		}
		f.Phone = &phone
	}

	raw, err := s.stg.Update(ctx, id, f)
	if err != nil {
		return nil, storeErr(err, "client", id)
	}
	c, err := normalizer.Client(raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("client updated", append(reqFields(ctx), logger.Int64("client_id", id))...)
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return storeErr(err, "client", id)
	}
	s.log.Info("client deleted", append(reqFields(ctx), logger.Int64("client_id", id))...)
	return nil
}
