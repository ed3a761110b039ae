package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/models"
)

func baseService() models.Raw {
	return models.Raw{
		"idServicio": float64(3),
		"origen":     "Atocha",
		"destino":    "Barajas T4",
		"precio":     float64(45),
		"fecha":      "2024-01-10",
		"hora":       "08:30",
		"nPersona":   float64(2),
		"mascota":    true,
	}
}

func driverFields() map[string]interface{} {
	return map[string]interface{}{
		"idConductor": float64(9),
		"nombre":      "Luis",
		"telefono":    "600 111 222",
	}
}

func TestRecordNormalizesCoreFields(t *testing.T) {
	rec, err := Record(models.KindService, baseService())
	require.NoError(t, err)

	assert.Equal(t, models.KindService, rec.Kind)
	assert.Equal(t, int64(3), rec.ID)
	assert.Equal(t, "Atocha", rec.Origin)
	assert.Equal(t, "Barajas T4", rec.Destination)
	assert.Equal(t, 45.0, rec.Price)
	assert.Equal(t, 4.5, rec.Surcharge)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, "08:30", rec.Time)
	assert.Equal(t, 2, rec.Passengers)
	assert.True(t, rec.Pet)
	assert.False(t, rec.Eurotaxi)
	assert.Nil(t, rec.Driver)
	assert.Nil(t, rec.DriverID)
	assert.Nil(t, rec.Client)
}

func TestRelationShapesAreEquivalent(t *testing.T) {
	t.Run("absent shapes", func(t *testing.T) {
		var results []*models.Record
		for _, shape := range []interface{}{nil, map[string]interface{}{}, []interface{}{}, []interface{}{map[string]interface{}{}}} {
			raw := baseService()
			raw["conductor"] = shape
			rec, err := Record(models.KindService, raw)
			require.NoError(t, err)
			results = append(results, rec)
		}
		for _, rec := range results[1:] {
			assert.Equal(t, results[0], rec)
		}
		assert.Nil(t, results[0].Driver)
	})

	t.Run("object and one-element array", func(t *testing.T) {
		asObject := baseService()
		asObject["conductor"] = driverFields()

		asArray := baseService()
		asArray["conductor"] = []interface{}{driverFields()}

		asTypedArray := baseService()
		asTypedArray["conductor"] = []map[string]interface{}{driverFields()}

		a, err := Record(models.KindService, asObject)
		require.NoError(t, err)
		b, err := Record(models.KindService, asArray)
		require.NoError(t, err)
		c, err := Record(models.KindService, asTypedArray)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Equal(t, a, c)
		require.NotNil(t, a.Driver)
		assert.Equal(t, "Luis", a.Driver.Name)
		require.NotNil(t, a.DriverID)
		assert.Equal(t, int64(9), *a.DriverID)
	})

	t.Run("relation embedded under the foreign key", func(t *testing.T) {
		raw := baseService()
		raw["id_conductor"] = map[string]interface{}{"nombre": "Luis", "telefono": "600"}
		rec, err := Record(models.KindService, raw)
		require.NoError(t, err)

		require.NotNil(t, rec.Driver)
		assert.Equal(t, "Luis", rec.Driver.Name)
		assert.Nil(t, rec.DriverID)
	})

	t.Run("scalar foreign key without relation", func(t *testing.T) {
		raw := baseService()
		raw["id_cliente"] = float64(4)
		rec, err := Record(models.KindService, raw)
		require.NoError(t, err)

		assert.Nil(t, rec.Client)
		require.NotNil(t, rec.ClientID)
		assert.Equal(t, int64(4), *rec.ClientID)
	})

	t.Run("more than one related entry is malformed", func(t *testing.T) {
		raw := baseService()
		raw["cliente"] = []interface{}{map[string]interface{}{"idCliente": 1}, map[string]interface{}{"idCliente": 2}}
		_, err := Record(models.KindService, raw)
		assert.ErrorIs(t, err, apperr.ErrMalformed)
	})
}

func TestPartialDriverKeepsUnknownNumbersNull(t *testing.T) {
	raw := baseService()
	raw["conductor"] = driverFields()
	rec, err := Record(models.KindService, raw)
	require.NoError(t, err)
	assert.Nil(t, rec.Driver.Debt)
	assert.Nil(t, rec.Driver.Revenue)

	fields := driverFields()
	fields["deuda"] = float64(0)
	raw["conductor"] = fields
	rec, err = Record(models.KindService, raw)
	require.NoError(t, err)
	require.NotNil(t, rec.Driver.Debt)
	assert.Equal(t, 0.0, *rec.Driver.Debt)
}

func TestFieldNameConventions(t *testing.T) {
	snake := models.Raw{
		"id_servicio": 3,
		"origen":      "Atocha",
		"destino":     "Barajas T4",
		"precio":      "45",
		"precio_10":   "4.50",
		"fecha":       "2024-01-10",
		"hora":        "08:30",
		"n_persona":   2,
		"mascota":     "true",
	}
	a, err := Record(models.KindService, baseService())
	require.NoError(t, err)
	b, err := Record(models.KindService, snake)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	t.Run("explicit key wins over fallback", func(t *testing.T) {
		raw := baseService()
		raw["n_persona"] = 7
		rec, err := Record(models.KindService, raw)
		require.NoError(t, err)
		assert.Equal(t, 2, rec.Passengers)
	})

	t.Run("null explicit key falls back", func(t *testing.T) {
		raw := baseService()
		raw["nPersona"] = nil
		raw["n_persona"] = 7
		rec, err := Record(models.KindService, raw)
		require.NoError(t, err)
		assert.Equal(t, 7, rec.Passengers)
	})
}

func TestSurchargeIsAlwaysDerived(t *testing.T) {
	raw := baseService()
	raw["precio10"] = float64(12)
	rec, err := Record(models.KindService, raw)
	require.NoError(t, err)
	assert.Equal(t, 4.5, rec.Surcharge)
}

func TestReservationUsesScheduledDate(t *testing.T) {
	raw := models.Raw{
		"idReserva":     float64(5),
		"origen":        "Sol",
		"destino":       "Chamartín",
		"precio":        float64(20),
		"fechaReserva":  "2024-01-15",
		"fecha":         "2024-01-01",
		"fechaCreacion": "2024-01-01T10:00:00Z",
	}
	rec, err := Record(models.KindReservation, raw)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.ID)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), rec.Date)
	require.NotNil(t, rec.CreatedAt)
	assert.Equal(t, 2024, rec.CreatedAt.Year())
}

func TestMissingRequiredFields(t *testing.T) {
	for _, key := range []string{"origen", "destino", "precio", "idServicio"} {
		t.Run(key, func(t *testing.T) {
			raw := baseService()
			delete(raw, key)
			_, err := Record(models.KindService, raw)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeMalformed))
		})
	}

	t.Run("blank origin", func(t *testing.T) {
		raw := baseService()
		raw["origen"] = "   "
		_, err := Record(models.KindService, raw)
		assert.ErrorIs(t, err, apperr.ErrMalformed)
	})

	t.Run("unparseable price", func(t *testing.T) {
		raw := baseService()
		raw["precio"] = "cheap"
		_, err := Record(models.KindService, raw)
		assert.ErrorIs(t, err, apperr.ErrMalformed)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := Record(models.KindService, nil)
		assert.ErrorIs(t, err, apperr.ErrMalformed)
	})
}

func TestPassengerCount(t *testing.T) {
	t.Run("missing defaults to one", func(t *testing.T) {
		raw := baseService()
		delete(raw, "nPersona")
		rec, err := Record(models.KindService, raw)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Passengers)
	})

	t.Run("null defaults to one", func(t *testing.T) {
		raw := baseService()
		raw["nPersona"] = nil
		rec, err := Record(models.KindService, raw)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Passengers)
	})

	t.Run("zero is malformed", func(t *testing.T) {
		raw := baseService()
		raw["nPersona"] = float64(0)
		_, err := Record(models.KindService, raw)
		assert.ErrorIs(t, err, apperr.ErrMalformed)
	})
}

func TestDriver(t *testing.T) {
	d, err := Driver(models.Raw{
		"id_conductor":    float64(2),
		"nombre":          "Marta",
		"telefono":        "611",
		"deuda":           "45.00",
		"dinero_generado": float64(300),
		"asiento":         float64(7),
		"silla_bebe":      float64(1),
		"eurotaxi":        true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.ID)
	assert.Equal(t, 45.0, *d.Debt)
	assert.Equal(t, 300.0, *d.Revenue)
	assert.Equal(t, 7, *d.Seats)
	assert.Equal(t, 1, *d.ChildSeats)
	assert.True(t, d.Eurotaxi)
	assert.True(t, d.HasDebt())

	_, err = Driver(models.Raw{"nombre": "No id"})
	assert.ErrorIs(t, err, apperr.ErrMalformed)

	_, err = Driver(models.Raw{"idConductor": 1, "deuda": -3})
	assert.ErrorIs(t, err, apperr.ErrMalformed)
}

func TestClient(t *testing.T) {
	c, err := Client(models.Raw{
		"idCliente":          float64(4),
		"nombre":             "Ana",
		"telefono":           "911-222-333",
		"fechaCreacion":      "2024-02-01T09:00:00",
		"fechaActualizacion": nil,
		"serviciosCount":     float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	assert.NotNil(t, c.CreatedAt)
	assert.Nil(t, c.UpdatedAt)
	assert.Equal(t, 3, c.ServiceCount)
	assert.Equal(t, 3, c.TotalRecords())
}

func TestPhoneKey(t *testing.T) {
	assert.Equal(t, PhoneKey("911222333"), PhoneKey("911-222-333"))
	assert.Equal(t, PhoneKey("911 222 333"), PhoneKey("(911) 222.333"))
	assert.Equal(t, PhoneKey("EXT12"), PhoneKey("ext-12"))
	assert.NotEqual(t, PhoneKey("911222333"), PhoneKey("911222334"))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-01-10", "2024-01-10T00:00:00Z", "2024-01-10T00:00:00", "2024-01-10 00:00:00"} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 10, d.Day())
	}
	_, err := ParseDate("mañana")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
