package models

import "time"

type Client struct {
	ID        int64      `json:"idCliente"`
	Name      string     `json:"nombre"`
	Phone     string     `json:"telefono"`
	CreatedAt *time.Time `json:"fechaCreacion"`
	UpdatedAt *time.Time `json:"fechaActualizacion"`

	ServiceCount     int `json:"serviciosCount"`
	ReservationCount int `json:"reservasCount"`
}

func (c *Client) TotalRecords() int {
	return c.ServiceCount + c.ReservationCount
}

type ClientFields struct {
	Name  *string `json:"nombre"`
	Phone *string `json:"telefono"`
}
