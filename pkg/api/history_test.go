package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/service"
	"taxidispatch/storage/memory"
)

func TestHistoryViewsAreDroppedAfterLoad(t *testing.T) {
	svc := service.New(memory.New(), logger.NewNop(), nil, service.Options{EnrichConcurrency: 1})
	h := newHandler(svc, logger.NewNop(), nil)

	for i := 0; i < 500; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/historial", nil)
		c.Request.Header.Set(viewHeader, fmt.Sprintf("view-%d", i))

		h.serveHistory(c, models.HistoryFilter{})
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Zero(t, h.views.size())
}

func TestViewRegistrySharesViewWhileLoadsOverlap(t *testing.T) {
	created := 0
	r := newViewRegistry(func() *historyView {
		created++
		return &historyView{}
	})

	first := r.acquire("console")
	second := r.acquire("console")
	assert.Same(t, first, second)
	assert.Equal(t, 1, created)

	r.release("console")
	assert.Equal(t, 1, r.size())

	r.release("console")
	assert.Zero(t, r.size())

	r.release("console")
	assert.NotSame(t, first, r.acquire("console"))
	assert.Equal(t, 2, created)
}
