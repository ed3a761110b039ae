// Package memory is an in-process implementation of storage.IStorage. It keeps
// rows as column maps and embeds relations the way the hosted backend does:
// the driver as a one-element list, the client as an object.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type table struct {
	seq  int64
	rows map[int64]models.Raw
}

func newTable() *table {
	return &table{rows: make(map[int64]models.Raw)}
}

func (t *table) sortedIDs() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type Store struct {
	mu      sync.RWMutex
	drivers *table
	clients *table
	records map[models.Kind]*table
	now     func() time.Time
}

func New() *Store {
	return &Store{
		drivers: newTable(),
		clients: newTable(),
		records: map[models.Kind]*table{
			models.KindService:     newTable(),
			models.KindReservation: newTable(),
		},
		now: time.Now,
	}
}

func (s *Store) Driver() storage.IDriverStorage { return &driverRepo{s: s} }
func (s *Store) Client() storage.IClientStorage { return &clientRepo{s: s} }
func (s *Store) Record(kind models.Kind) storage.IRecordStorage {
	return &recordRepo{s: s, kind: kind, t: storage.RecordTable(kind)}
}
func (s *Store) Close() {}

func clone(row models.Raw) models.Raw {
	out := make(models.Raw, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func merge(row models.Raw, cols map[string]interface{}) {
	for k, v := range cols {
		row[k] = v
	}
}

// detach clears a foreign key in every record that points at id, matching
// ON DELETE SET NULL in the SQL schema.
func (s *Store) detach(column string, id int64) {
	for _, t := range s.records {
		for _, row := range t.rows {
			if fk, ok := row[column].(int64); ok && fk == id {
				row[column] = nil
			}
		}
	}
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory store: %w", err)
	}
	return nil
}
