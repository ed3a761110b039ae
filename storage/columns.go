package storage

import (
	"taxidispatch/pkg/models"
)

const DateLayout = "2006-01-02"

const (
	DriverTable = "conductor"
	ClientTable = "cliente"

	DriverIDColumn = "id_conductor"
	ClientIDColumn = "id_cliente"
)

// Table describes where a record kind lives in the backing schema.
type Table struct {
	Name       string
	IDColumn   string
	DateColumn string
}

func RecordTable(kind models.Kind) Table {
	if kind == models.KindReservation {
		return Table{Name: "reserva", IDColumn: "id_reserva", DateColumn: "fecha_reserva"}
	}
	return Table{Name: "servicio", IDColumn: "id_servicio", DateColumn: "fecha"}
}

// RecordColumns maps the non-nil fields of f to column values. Dates are
// written as ISO calendar dates.
func RecordColumns(t Table, f *models.RecordFields) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "origen", f.Origin)
	set(cols, "destino", f.Destination)
	set(cols, "precio", f.Price)
	set(cols, "precio_10", f.Surcharge)
	if f.Date != nil {
		cols[t.DateColumn] = f.Date.Format(DateLayout)
	}
	set(cols, "hora", f.Time)
	set(cols, "n_persona", f.Passengers)
	set(cols, "requisitos", f.Requirements)
	set(cols, "eurotaxi", f.Eurotaxi)
	set(cols, "mascota", f.Pet)
	set(cols, "silla", f.ChildSeat)
	set(cols, "viaje_largo", f.LongDistance)
	set(cols, DriverIDColumn, f.DriverID)
	set(cols, ClientIDColumn, f.ClientID)
	return cols
}

func DriverColumns(f *models.DriverFields) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "nombre", f.Name)
	set(cols, "telefono", f.Phone)
	set(cols, "deuda", f.Debt)
	set(cols, "dinero_generado", f.Revenue)
	set(cols, "asiento", f.Seats)
	set(cols, "silla_bebe", f.ChildSeats)
	set(cols, "eurotaxi", f.Eurotaxi)
	return cols
}

func ClientColumns(f *models.ClientFields) map[string]interface{} {
	cols := map[string]interface{}{}
	set(cols, "nombre", f.Name)
	set(cols, "telefono", f.Phone)
	return cols
}

func set[T any](cols map[string]interface{}, name string, v *T) {
	if v != nil {
		cols[name] = *v
	}
}
