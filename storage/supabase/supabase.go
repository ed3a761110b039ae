// Package supabase implements storage.IStorage over the hosted backend's REST
// interface. Record reads embed the driver and client through their foreign
// keys, so the relation shape is whatever the backend chooses to return.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"taxidispatch/config"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/pkg/reqctx"
	"taxidispatch/storage"
)

type Store struct {
	client  *supa.Client
	restURL string
	key     string
	log     logger.ILogger
}

func New(cfg config.Config, log logger.ILogger) (*Store, error) {
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		log.Error("failed to create Supabase client", logger.Error(err))
		return nil, err
	}
	log.Info("Supabase client ready", logger.String("url", cfg.SupabaseURL))
	return &Store{client: client, restURL: cfg.SupabaseURL + supa.REST_URL, key: cfg.SupabaseKey, log: log}, nil
}

type querier interface {
	From(table string) *postgrest.QueryBuilder
}

// rest returns the client for ctx. A caller token from the request context is
// forwarded on a client of its own so row policies apply to that caller; the
// shared client always carries the service key.
func (s *Store) rest(ctx context.Context) querier {
	token := reqctx.From(ctx).Token
	if token == "" {
		return s.client
	}
	return postgrest.NewClient(s.restURL, "", map[string]string{
		"apikey":        s.key,
		"Authorization": "Bearer " + token,
	})
}

func (s *Store) Driver() storage.IDriverStorage {
	return &driverRepo{table: table{s: s, name: storage.DriverTable, idColumn: storage.DriverIDColumn, sel: "*"}, log: s.log}
}

func (s *Store) Client() storage.IClientStorage {
	return &clientRepo{table: table{s: s, name: storage.ClientTable, idColumn: storage.ClientIDColumn, sel: "*"}, log: s.log}
}

func (s *Store) Record(kind models.Kind) storage.IRecordStorage {
	t := storage.RecordTable(kind)
	sel := fmt.Sprintf("*, conductor:%s(*), cliente:%s(*)", storage.DriverIDColumn, storage.ClientIDColumn)
	return &recordRepo{
		table: table{s: s, name: t.Name, idColumn: t.IDColumn, sel: sel},
		t:     t,
		log:   s.log,
	}
}

// Close is a no-op; the REST client holds no pooled resources.
func (s *Store) Close() {}

// table runs the REST calls shared by every entity. The REST client does not
// take a context, so cancellation is only honoured before a call starts.
type table struct {
	s        *Store
	name     string
	idColumn string
	sel      string
}

func (t table) from(ctx context.Context) *postgrest.QueryBuilder {
	return t.s.rest(ctx).From(t.name)
}

func decode(data []byte) ([]models.Raw, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	out := make([]models.Raw, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out, nil
}

func single(data []byte) (models.Raw, error) {
	rows, err := decode(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return rows[0], nil
}

func idText(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (t table) list(ctx context.Context, column, value string) ([]models.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := t.from(ctx).Select(t.sel, "", false)
	if column != "" {
		q = q.Eq(column, value)
	}
	data, _, err := q.Order(t.idColumn, &postgrest.OrderOpts{Ascending: true}).Execute()
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (t table) get(ctx context.Context, rowID int64) (models.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, _, err := t.from(ctx).Select(t.sel, "", false).Eq(t.idColumn, idText(rowID)).Execute()
	if err != nil {
		return nil, err
	}
	return single(data)
}

func (t table) insert(ctx context.Context, cols map[string]interface{}) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, _, err := t.from(ctx).Insert(cols, false, "", "representation", "").Execute()
	if err != nil {
		return 0, err
	}
	row, err := single(data)
	if err != nil {
		return 0, err
	}
	v, ok := row[t.idColumn].(float64)
	if !ok {
		return 0, fmt.Errorf("insert into %s returned no %s", t.name, t.idColumn)
	}
	return int64(v), nil
}

func (t table) update(ctx context.Context, rowID int64, cols map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cols) == 0 {
		_, err := t.get(ctx, rowID)
		return err
	}
	data, _, err := t.from(ctx).Update(cols, "representation", "").Eq(t.idColumn, idText(rowID)).Execute()
	if err != nil {
		return err
	}
	_, err = single(data)
	return err
}

func (t table) delete(ctx context.Context, rowID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, _, err := t.from(ctx).Delete("representation", "").Eq(t.idColumn, idText(rowID)).Execute()
	if err != nil {
		return err
	}
	_, err = single(data)
	return err
}

func logFailure(log logger.ILogger, msg string, err error, fields ...logger.Field) {
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	log.Error(msg, append(fields, logger.Error(err))...)
}
