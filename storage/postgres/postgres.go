package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxidispatch/config"
	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/models"
	"taxidispatch/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	url := cfg.PostgresURL()

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := migrateUp(url, migrationsPath(cfg), log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connected")

	return &Store{
		pool: pool,
		log:  log,
	}, nil
}

// migrationsPath prefers the configured path, then migrations/postgres under
// the working directory.
func migrationsPath(cfg config.Config) string {
	if cfg.MigrationsPath != "" {
		return cfg.MigrationsPath
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "migrations", "postgres")
}

func migrateUp(url, path string, log logger.ILogger) error {
	m, err := migrate.New("file://"+path, url)
	if err != nil {
		log.Error("migration init error", logger.String("path", path), logger.Error(err))
		return err
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.pool, s.log) }
func (s *Store) Client() storage.IClientStorage { return NewClientRepo(s.pool, s.log) }
func (s *Store) Record(kind models.Kind) storage.IRecordStorage {
	return NewRecordRepo(s.pool, s.log, kind)
}

// Truncate empties every dispatch table and restarts their id sequences.
func (s *Store) Truncate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "TRUNCATE TABLE servicio, reserva, cliente, conductor RESTART IDENTITY CASCADE")
	return err
}

// Rows are read as JSON objects so relations can be embedded the same way the
// hosted backend embeds them.

func queryRaws(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) ([]models.Raw, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Raw
	for rows.Next() {
		var raw map[string]interface{}
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, rows.Err()
}

func queryRaw(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) (models.Raw, error) {
	var raw map[string]interface{}
	if err := db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// sortedColumns fixes the column order so generated statements are stable.
func sortedColumns(cols map[string]interface{}) ([]string, []interface{}) {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]interface{}, len(names))
	for i, name := range names {
		values[i] = cols[name]
	}
	return names, values
}

func insertRow(ctx context.Context, db *pgxpool.Pool, table, idColumn string, cols map[string]interface{}) (int64, error) {
	names, values := sortedColumns(cols)
	var query string
	if len(names) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", table, idColumn)
	} else {
		params := make([]string, len(names))
		for i := range names {
			params[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			table, strings.Join(names, ", "), strings.Join(params, ", "), idColumn)
	}

	var id int64
	if err := db.QueryRow(ctx, query, values...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// updateRow writes cols plus any raw SQL assignments in extra. It reports
// storage.ErrNotFound when no row has the id.
func updateRow(ctx context.Context, db *pgxpool.Pool, table, idColumn string, id int64, cols map[string]interface{}, extra ...string) error {
	names, values := sortedColumns(cols)
	sets := make([]string, 0, len(names)+len(extra))
	for i, name := range names {
		sets = append(sets, fmt.Sprintf("%s = $%d", name, i+1))
	}
	sets = append(sets, extra...)
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(sets, ", "), idColumn, len(values)+1)
	res, err := db.Exec(ctx, query, append(values, id)...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func deleteRow(ctx context.Context, db *pgxpool.Pool, table, idColumn string, id int64) error {
	res, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idColumn), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
