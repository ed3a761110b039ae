package models

import (
	"time"
)

type Kind string

const (
	KindService     Kind = "service"
	KindReservation Kind = "reservation"
)

func (k Kind) Valid() bool {
	return k == KindService || k == KindReservation
}

type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// Record is a trip record: a completed service or a scheduled reservation.
// Date is the service date for services and the scheduled date for reservations.
type Record struct {
	Kind         Kind       `json:"tipo"`
	ID           int64      `json:"id"`
	Origin       string     `json:"origen"`
	Destination  string     `json:"destino"`
	Price        float64    `json:"precio"`
	Surcharge    float64    `json:"precio10"`
	Date         time.Time  `json:"fecha"`
	Time         string     `json:"hora"`
	Passengers   int        `json:"nPersona"`
	Requirements string     `json:"requisitos"`
	Eurotaxi     bool       `json:"eurotaxi"`
	Pet          bool       `json:"mascota"`
	ChildSeat    bool       `json:"silla"`
	LongDistance bool       `json:"viajeLargo"`
	DriverID     *int64     `json:"idConductor"`
	ClientID     *int64     `json:"idCliente"`
	Driver       *Driver    `json:"conductor"`
	Client       *Client    `json:"cliente"`
	CreatedAt    *time.Time `json:"fechaCreacion,omitempty"`
}

// RecordInput is what callers submit to create or patch a trip record. Nil
// fields are omitted. A client is referenced either by ClientID or by the
// ClientName/ClientPhone pair. Surcharge is accepted for compatibility but is
// always recomputed from Price.
type RecordInput struct {
	Origin          *string  `json:"origen"`
	Destination     *string  `json:"destino"`
	Price           *float64 `json:"precio"`
	Surcharge       *float64 `json:"precio10"`
	Date            *string  `json:"fecha"`
	ReservationDate *string  `json:"fechaReserva"`
	Time            *string  `json:"hora"`
	Passengers      *int     `json:"nPersona"`
	Requirements    *string  `json:"requisitos"`
	Eurotaxi        *bool    `json:"eurotaxi"`
	Pet             *bool    `json:"mascota"`
	ChildSeat       *bool    `json:"silla"`
	LongDistance    *bool    `json:"viajeLargo"`
	DriverID        *int64   `json:"idConductor"`
	ClientID        *int64   `json:"idCliente"`
	ClientName      *string  `json:"clienteNombre"`
	ClientPhone     *string  `json:"clienteTelefono"`
}

// DateFor returns the submitted trip date for kind; reservations prefer the
// scheduled date key.
func (in *RecordInput) DateFor(kind Kind) *string {
	if kind == KindReservation && in.ReservationDate != nil {
		return in.ReservationDate
	}
	return in.Date
}

// RecordFields is the resolved write-side field set handed to storage. Client
// and driver are referenced by identifier only.
type RecordFields struct {
	Origin       *string
	Destination  *string
	Price        *float64
	Surcharge    *float64
	Date         *time.Time
	Time         *string
	Passengers   *int
	Requirements *string
	Eurotaxi     *bool
	Pet          *bool
	ChildSeat    *bool
	LongDistance *bool
	DriverID     *int64
	ClientID     *int64
}

func (f *RecordFields) Empty() bool {
	return *f == RecordFields{}
}
