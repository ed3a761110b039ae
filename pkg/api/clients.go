package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxidispatch/pkg/models"
)

func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.svc.Client().List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) GetClient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	client, err := h.svc.Client().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var in models.ClientFields
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	client, err := h.svc.Client().Create(c.Request.Context(), &in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.ClientFields
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	client, err := h.svc.Client().Update(c.Request.Context(), id, &in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Client().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
