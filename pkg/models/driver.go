package models

type Driver struct {
	ID    int64  `json:"idConductor"`
	Name  string `json:"nombre"`
	Phone string `json:"telefono"`
	// Debt and Revenue are nil when the backend did not return them.
	Debt       *float64 `json:"deuda"`
	Revenue    *float64 `json:"dineroGenerado"`
	Seats      *int     `json:"asiento"`
	ChildSeats *int     `json:"sillaBebe"`
	Eurotaxi   bool     `json:"eurotaxi"`
}

// HasDebt reports a known, strictly positive balance.
func (d *Driver) HasDebt() bool {
	return d.Debt != nil && *d.Debt > 0
}

// DriverFields is the write-side field set for drivers. Nil fields are not written.
type DriverFields struct {
	Name       *string  `json:"nombre"`
	Phone      *string  `json:"telefono"`
	Debt       *float64 `json:"deuda"`
	Revenue    *float64 `json:"dineroGenerado"`
	Seats      *int     `json:"asiento"`
	ChildSeats *int     `json:"sillaBebe"`
	Eurotaxi   *bool    `json:"eurotaxi"`
}
