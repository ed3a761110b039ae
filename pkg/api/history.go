package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"taxidispatch/pkg/models"
	"taxidispatch/service"
)

const viewHeader = "X-View-Id"

type historyView = service.LatestView[models.HistoryFilter, []*models.HistoryEntry]

// History serves the merged ledger across all drivers.
func (h *Handler) History(c *gin.Context) {
	filter, err := historyFilter(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.serveHistory(c, filter)
}

func (h *Handler) DriverHistory(c *gin.Context) {
	driverID, err := pathID(c, "driverId")
	if err != nil {
		h.fail(c, err)
		return
	}
	filter, err := historyFilter(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	filter.DriverID = &driverID
	h.serveHistory(c, filter)
}

// serveHistory answers 204 when the console re-filtered the same view while
// this load was in flight; the newer request carries the result.
func (h *Handler) serveHistory(c *gin.Context, filter models.HistoryFilter) {
	viewID := c.GetHeader(viewHeader)
	if viewID == "" {
		entries, err := h.svc.History().History(c.Request.Context(), filter)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	view := h.views.acquire(viewID)
	defer h.views.release(viewID)
	entries, ok, err := view.Load(c.Request.Context(), filter)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// viewRegistry holds a view only while it has loads in flight. Supersession
// only concerns overlapping loads, so a view with none pending is dropped and
// the next request for that id starts a fresh one.
type viewRegistry struct {
	mu      sync.Mutex
	views   map[string]*viewEntry
	newView func() *historyView
}

type viewEntry struct {
	view    *historyView
	pending int
}

func newViewRegistry(newView func() *historyView) *viewRegistry {
	return &viewRegistry{views: make(map[string]*viewEntry), newView: newView}
}

func (r *viewRegistry) acquire(id string) *historyView {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[id]
	if !ok {
		e = &viewEntry{view: r.newView()}
		r.views[id] = e
	}
	e.pending++
	return e.view
}

func (r *viewRegistry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[id]
	if !ok {
		return
	}
	if e.pending--; e.pending == 0 {
		delete(r.views, id)
	}
}

func (r *viewRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func historyFilter(c *gin.Context) (models.HistoryFilter, error) {
	var (
		f   models.HistoryFilter
		err error
	)
	if f.From, err = queryDate(c, "desde"); err != nil {
		return f, err
	}
	if f.To, err = queryDate(c, "hasta"); err != nil {
		return f, err
	}
	return f, nil
}

