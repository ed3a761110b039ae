package service

import (
	"context"
	"strings"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/normalizer"
	"taxidispatch/storage"
)

// ClientResolver turns a (name, phone) pair into a stable client id, creating
// the client when no existing one matches the phone.
//
// Lookup and creation are two separate backend calls. Without a uniqueness
// constraint on the phone column, two concurrent resolutions of a new phone can
// both miss and both create; callers must not paper over that afterwards.
type ClientResolver struct {
	stg     storage.IClientStorage
	log     logger.ILogger
	metrics *metrics.Metrics
}

func NewClientResolver(stg storage.IClientStorage, log logger.ILogger, m *metrics.Metrics) *ClientResolver {
	return &ClientResolver{stg: stg, log: log, metrics: m}
}

// Resolve returns explicitID when given. Otherwise it matches phone against
// existing clients ignoring case and formatting, refreshing the stored name on
// a hit, and creates a client on a miss.
func (r *ClientResolver) Resolve(ctx context.Context, name, phone string, explicitID *int64) (int64, error) {
	if explicitID != nil {
		if *explicitID <= 0 {
			return 0, apperr.Validation("client id %d is not valid", *explicitID)
		}
		return *explicitID, nil
	}

	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" {
		return 0, apperr.Validation("client name is required")
	}
	if phone == "" || normalizer.PhoneKey(phone) == "" {
		return 0, apperr.Validation("client phone is required")
	}

	existing, err := r.FindByPhone(ctx, phone)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if existing.Name != name {
			r.refreshName(ctx, existing, name)
		}
		return existing.ID, nil
	}

	raw, err := r.stg.Create(ctx, &models.ClientFields{Name: &name, Phone: &phone})
	if err != nil {
		return 0, apperr.Store(err, "create client")
	}
	created, err := normalizer.Client(raw)
	if err != nil {
		return 0, err
	}
	r.metrics.IncClientsCreated()
	r.log.Info("client created from trip record",
		append(reqFields(ctx), logger.Int64("client_id", created.ID))...)
	return created.ID, nil
}

// FindByPhone returns the first client whose phone matches, or nil.
func (r *ClientResolver) FindByPhone(ctx context.Context, phone string) (*models.Client, error) {
	key := normalizer.PhoneKey(phone)
	if key == "" {
		return nil, nil
	}
	raws, err := r.stg.GetAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "look up clients")
	}
	clients, err := normalizer.Clients(raws)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if normalizer.PhoneKey(c.Phone) == key {
			return c, nil
		}
	}
	return nil, nil
}

// refreshName overwrites the stored name; the phone is never rewritten. A
// failed refresh keeps the resolution result.
func (r *ClientResolver) refreshName(ctx context.Context, c *models.Client, name string) {
	if _, err := r.stg.Update(ctx, c.ID, &models.ClientFields{Name: &name}); err != nil {
		r.log.Warning("client name refresh failed",
			append(reqFields(ctx), logger.Int64("client_id", c.ID), logger.Error(err))...)
		return
	}
	r.metrics.IncClientNameRefresh()
	c.Name = name
}
