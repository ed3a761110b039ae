// Package normalizer turns loosely-typed backend payloads into canonical
// entities. Relations may arrive as an object, a one-element array or be
// absent, and field names may be camelCase or snake_case; this package is the
// only place that knows about either variation.
package normalizer

import (
	"strings"
	"time"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/billing"
	"taxidispatch/pkg/models"
)

// defaultPassengers matches the column default for rows written without a count.
const defaultPassengers = 1

// Alias lists, preferred key first.
var (
	serviceIDKeys     = []string{"idServicio", "id_servicio", "id"}
	reservationIDKeys = []string{"idReserva", "id_reserva", "id"}
	serviceDateKeys   = []string{"fecha", "date"}
	reserveDateKeys   = []string{"fechaReserva", "fecha_reserva", "fecha", "date"}

	driverRelationKeys = []string{"conductor", "driver", "id_conductor", "idConductor"}
	driverIDKeys       = []string{"idConductor", "id_conductor", "driverId", "driver_id"}
	clientRelationKeys = []string{"cliente", "client", "id_cliente", "idCliente"}
	clientIDKeys       = []string{"idCliente", "id_cliente", "clientId", "client_id"}

	createdKeys = []string{"fechaCreacion", "fecha_creacion", "createdAt", "created_at"}
	updatedKeys = []string{"fechaActualizacion", "fecha_actualizacion", "updatedAt", "updated_at"}
)

// Record normalizes a service or reservation payload.
func Record(kind models.Kind, raw models.Raw) (*models.Record, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("unknown record kind %q", kind)
	}
	if len(raw) == 0 {
		return nil, apperr.Malformed("empty %s record", kind)
	}

	idKeys, dateKeys := serviceIDKeys, serviceDateKeys
	if kind == models.KindReservation {
		idKeys, dateKeys = reservationIDKeys, reserveDateKeys
	}

	r := newReader(raw, string(kind))
	rec := &models.Record{Kind: kind}
	rec.ID = r.requiredID("id", idKeys...)
	rec.Origin = r.requiredString("origin", "origen", "origin")
	rec.Destination = r.requiredString("destination", "destino", "destination")
	rec.Price = r.requiredFloat("price", "precio", "price")
	rec.Date = r.date("date", dateKeys...)
	rec.Time = r.str("hora", "time")
	rec.Passengers = defaultPassengers
	if n := r.integer("passengers", "nPersona", "n_persona", "passengers"); n != nil {
		rec.Passengers = *n
	}
	rec.Requirements = r.str("requisitos", "requirements")
	rec.Eurotaxi = r.boolean("eurotaxi", "eurotaxi")
	rec.Pet = r.boolean("pet", "mascota", "pet")
	rec.ChildSeat = r.boolean("child seat", "silla", "childSeat", "child_seat")
	rec.LongDistance = r.boolean("long distance", "viajeLargo", "viaje_largo", "longDistance")
	rec.CreatedAt = r.optionalDate("created", createdKeys...)
	if r.err != nil {
		return nil, r.err
	}
	if rec.Price < 0 {
		return nil, apperr.Malformed("%s %d has negative price %.2f", kind, rec.ID, rec.Price)
	}
	if rec.Passengers < 1 {
		return nil, apperr.Malformed("%s %d has passenger count %d", kind, rec.ID, rec.Passengers)
	}

	var err error
	if rec.Surcharge, err = billing.Surcharge(rec.Price); err != nil {
		return nil, apperr.Malformed("%s %d has an invalid price", kind, rec.ID)
	}

	if rec.Driver, err = embeddedDriver(raw); err != nil {
		return nil, err
	}
	var driverRelID int64
	if rec.Driver != nil {
		driverRelID = rec.Driver.ID
	}
	rec.DriverID = resolveID(raw, driverRelID, driverIDKeys)
	if rec.Driver != nil && rec.DriverID != nil {
		rec.Driver.ID = *rec.DriverID
	}

	if rec.Client, err = embeddedClient(raw); err != nil {
		return nil, err
	}
	var clientRelID int64
	if rec.Client != nil {
		clientRelID = rec.Client.ID
	}
	rec.ClientID = resolveID(raw, clientRelID, clientIDKeys)
	if rec.Client != nil && rec.ClientID != nil {
		rec.Client.ID = *rec.ClientID
	}

	return rec, nil
}

// Records normalizes a batch, failing on the first malformed entry.
func Records(kind models.Kind, raws []models.Raw) ([]*models.Record, error) {
	out := make([]*models.Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := Record(kind, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Driver normalizes a top-level driver payload. The identifier is required.
func Driver(raw models.Raw) (*models.Driver, error) {
	if len(raw) == 0 {
		return nil, apperr.Malformed("empty driver record")
	}
	return driverFrom(raw, true)
}

func Drivers(raws []models.Raw) ([]*models.Driver, error) {
	out := make([]*models.Driver, 0, len(raws))
	for _, raw := range raws {
		d, err := Driver(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Client normalizes a top-level client payload. The identifier is required.
func Client(raw models.Raw) (*models.Client, error) {
	if len(raw) == 0 {
		return nil, apperr.Malformed("empty client record")
	}
	return clientFrom(raw, true)
}

func Clients(raws []models.Raw) ([]*models.Client, error) {
	out := make([]*models.Client, 0, len(raws))
	for _, raw := range raws {
		c, err := Client(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func driverFrom(raw models.Raw, requireID bool) (*models.Driver, error) {
	r := newReader(raw, "driver")
	d := &models.Driver{}
	if requireID {
		d.ID = r.requiredID("id", "idConductor", "id_conductor", "id")
	} else if id := r.optionalID("id", "idConductor", "id_conductor", "id"); id != nil {
		d.ID = *id
	}
	d.Name = r.str("nombre", "name")
	d.Phone = r.str("telefono", "phone")
	d.Debt = r.float("debt", "deuda", "debt")
	d.Revenue = r.float("revenue", "dineroGenerado", "dinero_generado", "revenue")
	d.Seats = r.integer("seats", "asiento", "asientos", "seats")
	d.ChildSeats = r.integer("child seats", "sillaBebe", "silla_bebe", "childSeats")
	d.Eurotaxi = r.boolean("eurotaxi", "eurotaxi")
	if r.err != nil {
		return nil, r.err
	}
	if d.Debt != nil && *d.Debt < 0 {
		return nil, apperr.Malformed("driver %d has negative debt %.2f", d.ID, *d.Debt)
	}
	return d, nil
}

func clientFrom(raw models.Raw, requireID bool) (*models.Client, error) {
	r := newReader(raw, "client")
	c := &models.Client{}
	if requireID {
		c.ID = r.requiredID("id", "idCliente", "id_cliente", "id")
	} else if id := r.optionalID("id", "idCliente", "id_cliente", "id"); id != nil {
		c.ID = *id
	}
	c.Name = r.str("nombre", "name")
	c.Phone = r.str("telefono", "phone")
	c.CreatedAt = r.optionalDate("created", createdKeys...)
	c.UpdatedAt = r.optionalDate("updated", updatedKeys...)
	if n := r.integer("service count", "serviciosCount", "servicios_count"); n != nil {
		c.ServiceCount = *n
	}
	if n := r.integer("reservation count", "reservasCount", "reservas_count"); n != nil {
		c.ReservationCount = *n
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}

func embeddedDriver(raw models.Raw) (*models.Driver, error) {
	rel, ok, err := relation(raw, driverRelationKeys...)
	if err != nil || !ok {
		return nil, err
	}
	return driverFrom(rel, false)
}

func embeddedClient(raw models.Raw) (*models.Client, error) {
	rel, ok, err := relation(raw, clientRelationKeys...)
	if err != nil || !ok {
		return nil, err
	}
	return clientFrom(rel, false)
}

// resolveID prefers the identifier carried by the embedded relation and falls
// back to a scalar foreign key on the record itself.
func resolveID(raw models.Raw, relID int64, keys []string) *int64 {
	if relID != 0 {
		return &relID
	}
	r := newReader(raw, "relation")
	if id := r.optionalID("foreign key", keys...); id != nil && r.err == nil && *id != 0 {
		return id
	}
	return nil
}

// PhoneKey folds a phone number to its comparison key: letters lowercased,
// digits and plus signs kept, separators and punctuation dropped.
func PhoneKey(phone string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(phone) {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"02/01/2006",
}

// ParseDate accepts the date encodings seen across backend revisions.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("unrecognised date %q", s)
}
