package models

import "time"

// HistoryEntry is a read-only projection of a trip record for merged views.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"tipo"`
	RecordID    int64     `json:"idRegistro"`
	Date        time.Time `json:"fecha"`
	Time        string    `json:"hora"`
	Origin      string    `json:"origen"`
	Destination string    `json:"destino"`
	Price       float64   `json:"precio"`
	Surcharge   float64   `json:"precio10"`
	DriverID    *int64    `json:"idConductor"`
	DriverName  string    `json:"conductorNombre"`
	ClientName  string    `json:"clienteNombre"`
}

// HistoryFilter narrows a merged history. Nil fields are unbounded.
type HistoryFilter struct {
	DriverID *int64
	From     *time.Time
	To       *time.Time
}
