package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/models"
)

func (h *Handler) ListDrivers(c *gin.Context) {
	drivers, err := h.svc.Driver().List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) DriversWithDebt(c *gin.Context) {
	drivers, err := h.svc.Ledger().WithDebt(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) DriversWithoutDebt(c *gin.Context) {
	drivers, err := h.svc.Ledger().WithoutDebt(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) GetDriver(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDriver(c *gin.Context) {
	var in models.DriverFields
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.svc.Driver().Create(c.Request.Context(), &in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.DriverFields
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.svc.Driver().Update(c.Request.Context(), id, &in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Driver().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SettleDebt zeroes the driver's debt. Settling a driver who owes nothing is
// reported with settled=false rather than as a failure.
func (h *Handler) SettleDebt(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.svc.Ledger().SettleDebt(c.Request.Context(), id)
	switch {
	case errors.Is(err, apperr.ErrNoOp):
		c.JSON(http.StatusOK, gin.H{"settled": false, "conductor": d, "message": apperr.UserMessage(err)})
	case err != nil:
		h.fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"settled": true, "conductor": d})
	}
}
