package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/models"
	"taxidispatch/service"
)

func (h *Handler) records(kind models.Kind) service.RecordService {
	return h.svc.Records(kind)
}

// ListRecords supports ?orden=desc for most recent first.
func (h *Handler) ListRecords(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		order := models.SortAscending
		switch c.Query("orden") {
		case "", "asc":
		case "desc":
			order = models.SortDescending
		default:
			h.fail(c, apperr.Validation("orden must be asc or desc"))
			return
		}
		recs, err := h.records(kind).ListOrdered(c.Request.Context(), order)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

func (h *Handler) GetRecord(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			h.fail(c, err)
			return
		}
		rec, err := h.records(kind).Get(c.Request.Context(), id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func (h *Handler) ListRecordsByDriver(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID, err := pathID(c, "driverId")
		if err != nil {
			h.fail(c, err)
			return
		}
		from, err := queryDate(c, "desde")
		if err != nil {
			h.fail(c, err)
			return
		}
		to, err := queryDate(c, "hasta")
		if err != nil {
			h.fail(c, err)
			return
		}
		recs, err := h.records(kind).ListByDriver(c.Request.Context(), driverID, from, to)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

func (h *Handler) CreateRecord(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.RecordInput
		if err := bindJSON(c, &in); err != nil {
			h.fail(c, err)
			return
		}
		rec, err := h.records(kind).Create(c.Request.Context(), &in)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func (h *Handler) UpdateRecord(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			h.fail(c, err)
			return
		}
		var in models.RecordInput
		if err := bindJSON(c, &in); err != nil {
			h.fail(c, err)
			return
		}
		rec, err := h.records(kind).Update(c.Request.Context(), id, &in)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func (h *Handler) DeleteRecord(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			h.fail(c, err)
			return
		}
		if err := h.records(kind).Delete(c.Request.Context(), id); err != nil {
			h.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
