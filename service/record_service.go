package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/billing"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/normalizer"
	"taxidispatch/storage"
)

var tracer = otel.Tracer("taxidispatch/service")

// RecordService is the record store for one kind of trip record.
type RecordService interface {
	Kind() models.Kind
	List(ctx context.Context) ([]*models.Record, error)
	ListOrdered(ctx context.Context, order models.SortOrder) ([]*models.Record, error)
	Get(ctx context.Context, id int64) (*models.Record, error)
	Create(ctx context.Context, in *models.RecordInput) (*models.Record, error)
	Update(ctx context.Context, id int64, in *models.RecordInput) (*models.Record, error)
	Delete(ctx context.Context, id int64) error
	ListByDriver(ctx context.Context, driverID int64, from, to *time.Time) ([]*models.Record, error)
	// Snapshot is the collection as last republished after a mutation.
	Snapshot() []*models.Record
	// Subscribe receives the republished collection. Slow readers only see
	// the latest one. The returned func unsubscribes.
	Subscribe() (<-chan []*models.Record, func())
}

type recordService struct {
	kind     models.Kind
	stg      storage.IRecordStorage
	resolver *ClientResolver
	log      logger.ILogger
	metrics  *metrics.Metrics
	now      func() time.Time

	coll collection
}

func NewRecordService(kind models.Kind, stg storage.IRecordStorage, resolver *ClientResolver, log logger.ILogger, m *metrics.Metrics) RecordService {
	return &recordService{
		kind:     kind,
		stg:      stg,
		resolver: resolver,
		log:      log.With(logger.String("kind", string(kind))),
		metrics:  m,
		now:      time.Now,
		coll:     collection{subs: map[int]chan []*models.Record{}},
	}
}

func (s *recordService) Kind() models.Kind {
	return s.kind
}

func (s *recordService) List(ctx context.Context) ([]*models.Record, error) {
	return s.ListOrdered(ctx, models.SortAscending)
}

func (s *recordService) ListOrdered(ctx context.Context, order models.SortOrder) ([]*models.Record, error) {
	raws, err := s.stg.GetAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "list %s records", s.kind)
	}
	recs, err := normalizer.Records(s.kind, raws)
	if err != nil {
		return nil, err
	}
	sortByDate(recs, order)
	return recs, nil
}

func (s *recordService) Get(ctx context.Context, id int64) (*models.Record, error) {
	raw, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, string(s.kind), id)
	}
	return normalizer.Record(s.kind, raw)
}

func (s *recordService) Create(ctx context.Context, in *models.RecordInput) (rec *models.Record, err error) {
	ctx, span := s.startSpan(ctx, "create")
	defer func() { endSpan(span, err) }()

	if in == nil {
		return nil, apperr.Validation("%s input is required", s.kind)
	}
	fields, err := s.fields(in, true)
	if err != nil {
		return nil, err
	}
	if in.ClientID == nil && in.ClientName == nil && in.ClientPhone == nil {
		return nil, apperr.Validation("a client id or a client name and phone are required")
	}
	clientID, err := s.resolver.Resolve(ctx, deref(in.ClientName), deref(in.ClientPhone), in.ClientID)
	if err != nil {
		return nil, err
	}
	fields.ClientID = &clientID

	raw, err := s.stg.Create(ctx, fields)
	if err != nil {
		return nil, apperr.Store(err, "create %s", s.kind)
	}
	if rec, err = normalizer.Record(s.kind, raw); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("record.id", rec.ID))

	s.metrics.IncMutation(string(s.kind), "create")
	s.log.Info("record created", append(reqFields(ctx), logger.Int64("id", rec.ID), logger.Int64("client_id", clientID))...)
	s.republish(ctx)
	return rec, nil
}

// Update applies only the supplied fields. An empty patch returns the current record.
func (s *recordService) Update(ctx context.Context, id int64, in *models.RecordInput) (rec *models.Record, err error) {
	ctx, span := s.startSpan(ctx, "update", attribute.Int64("record.id", id))
	defer func() { endSpan(span, err) }()

	if in == nil {
		in = &models.RecordInput{}
	}
	fields, err := s.fields(in, false)
	if err != nil {
		return nil, err
	}

	touchesClient := in.ClientID != nil || in.ClientName != nil || in.ClientPhone != nil
	if touchesClient {
		if in.ClientID == nil && (in.ClientName == nil || in.ClientPhone == nil) {
			return nil, apperr.Validation("client name and phone must be changed together")
		}
		// The record must exist before a client gets created for it.
		if _, err := s.stg.GetByID(ctx, id); err != nil {
			return nil, storeErr(err, string(s.kind), id)
		}
		clientID, err := s.resolver.Resolve(ctx, deref(in.ClientName), deref(in.ClientPhone), in.ClientID)
		if err != nil {
			return nil, err
		}
		fields.ClientID = &clientID
	}

	if fields.Empty() {
		return s.Get(ctx, id)
	}

	raw, err := s.stg.Update(ctx, id, fields)
	if err != nil {
		return nil, storeErr(err, string(s.kind), id)
	}
	if rec, err = normalizer.Record(s.kind, raw); err != nil {
		return nil, err
	}

	s.metrics.IncMutation(string(s.kind), "update")
	s.log.Info("record updated", append(reqFields(ctx), logger.Int64("id", id))...)
	s.republish(ctx)
	return rec, nil
}

func (s *recordService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "delete", attribute.Int64("record.id", id))
	defer func() { endSpan(span, err) }()

	if err = s.stg.Delete(ctx, id); err != nil {
		return storeErr(err, string(s.kind), id)
	}

	s.metrics.IncMutation(string(s.kind), "delete")
	s.log.Info("record deleted", append(reqFields(ctx), logger.Int64("id", id))...)
	s.republish(ctx)
	return nil
}

// ListByDriver returns the driver's records dated within [from, to], both
// bounds inclusive by calendar day, ascending by date.
func (s *recordService) ListByDriver(ctx context.Context, driverID int64, from, to *time.Time) ([]*models.Record, error) {
	if driverID <= 0 {
		return nil, apperr.Validation("driver id %d is not valid", driverID)
	}
	if from != nil && to != nil && calendarDay(*from).After(calendarDay(*to)) {
		return nil, apperr.Validation("date range starts after it ends")
	}
	raws, err := s.stg.GetByDriver(ctx, driverID)
	if err != nil {
		return nil, apperr.Store(err, "list %s records of driver %d", s.kind, driverID)
	}
	recs, err := normalizer.Records(s.kind, raws)
	if err != nil {
		return nil, err
	}

	out := recs[:0]
	for _, rec := range recs {
		if rec.DriverID != nil && *rec.DriverID == driverID && inRange(rec.Date, from, to) {
			out = append(out, rec)
		}
	}
	sortByDate(out, models.SortAscending)
	return out, nil
}

func (s *recordService) Snapshot() []*models.Record {
	return s.coll.snapshot()
}

func (s *recordService) Subscribe() (<-chan []*models.Record, func()) {
	return s.coll.subscribe()
}

// fields validates in and converts it to the write-side field set, with the
// surcharge derived from the price. Client identity is resolved by the caller.
func (s *recordService) fields(in *models.RecordInput, create bool) (*models.RecordFields, error) {
	f := &models.RecordFields{}

	var err error
	if f.Origin, err = requiredText("origin", in.Origin, create); err != nil {
		return nil, err
	}
	if f.Destination, err = requiredText("destination", in.Destination, create); err != nil {
		return nil, err
	}

	if in.Price != nil {
		p := *in.Price
		f.Price = &p
	} else if create {
		return nil, apperr.Validation("price is required")
	}
	if err := billing.Apply(f); err != nil {
		return nil, err
	}

	if d := in.DateFor(s.kind); d != nil && strings.TrimSpace(*d) != "" {
		t, err := normalizer.ParseDate(*d)
		if err != nil {
			return nil, err
		}
		f.Date = &t
	} else if create {
		if s.kind == models.KindReservation {
			return nil, apperr.Validation("reservation date is required")
		}
		today := calendarDay(s.now())
		f.Date = &today
	}

	if in.Time != nil {
		t := strings.TrimSpace(*in.Time)
		f.Time = &t
	}
	if in.Passengers != nil {
		if *in.Passengers < 1 {
			return nil, apperr.Validation("passenger count must be at least 1, got %d", *in.Passengers)
		}
		n := *in.Passengers
		f.Passengers = &n
	} else if create {
		one := 1
		f.Passengers = &one
	}
	if in.Requirements != nil {
		r := strings.TrimSpace(*in.Requirements)
		f.Requirements = &r
	}
	f.Eurotaxi, f.Pet, f.ChildSeat, f.LongDistance = in.Eurotaxi, in.Pet, in.ChildSeat, in.LongDistance
	if create {
		f.Eurotaxi, f.Pet = orFalse(f.Eurotaxi), orFalse(f.Pet)
		f.ChildSeat, f.LongDistance = orFalse(f.ChildSeat), orFalse(f.LongDistance)
	}

	if in.DriverID != nil {
		if *in.DriverID <= 0 {
			return nil, apperr.Validation("driver id %d is not valid", *in.DriverID)
		}
		id := *in.DriverID
		f.DriverID = &id
	}
	return f, nil
}

func requiredText(field string, v *string, create bool) (*string, error) {
	if v == nil {
		if create {
			return nil, apperr.Validation("%s is required", field)
		}
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil, apperr.Validation("%s must not be blank", field)
	}
	return &t, nil
}

func orFalse(b *bool) *bool {
	if b == nil {
		return new(bool)
	}
	return b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// republish re-lists the collection after a mutation. Refreshes can finish out
// of order; a refresh that started before an already applied one is dropped.
func (s *recordService) republish(ctx context.Context) {
	tag := s.coll.begin()
	recs, err := s.List(ctx)
	if err != nil {
		s.log.Warning("collection refresh failed", append(reqFields(ctx), logger.Error(err))...)
		return
	}
	if !s.coll.publish(tag, recs) {
		s.log.Debug("stale collection refresh dropped", reqFields(ctx, logger.Int64("tag", int64(tag)))...)
	}
}

func (s *recordService) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("record.kind", string(s.kind)))
	return tracer.Start(ctx, "records."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperr.CodeOf(err)))
	}
	span.End()
}

// sortByDate orders records by trip date, keeping the backend order for equal dates.
func sortByDate(recs []*models.Record, order models.SortOrder) {
	sort.SliceStable(recs, func(i, j int) bool {
		if order == models.SortDescending {
			return recs[i].Date.After(recs[j].Date)
		}
		return recs[i].Date.Before(recs[j].Date)
	})
}

type collection struct {
	mu      sync.Mutex
	current []*models.Record
	subs    map[int]chan []*models.Record
	next    int

	started uint64
	applied uint64
}

// begin tags a refresh in start order.
func (c *collection) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
	return c.started
}

func (c *collection) snapshot() []*models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*models.Record(nil), c.current...)
}

func (c *collection) subscribe() (<-chan []*models.Record, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan []*models.Record, 1)
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// publish applies recs unless a refresh that started later was already
// applied. It reports whether recs were applied.
func (c *collection) publish(tag uint64, recs []*models.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tag < c.applied {
		return false
	}
	c.applied = tag
	c.current = recs
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- append([]*models.Record(nil), recs...)
	}
	return true
}
