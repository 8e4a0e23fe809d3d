// Package repository содержит реализацию хранилища истории в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/award-search/internal/history"
	"github.com/mmeshcher/award-search/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var defaultRetryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// PostgresRepository хранит недавно выбранные аэропорты и историю поиска в PostgreSQL.
type PostgresRepository struct {
	pool        *pgxpool.Pool
	retryDelays []time.Duration
}

var _ history.Store = (*PostgresRepository)(nil)

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool, retryDelays: defaultRetryDelays}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error

	for i := 0; i <= len(r.retryDelays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if !isRetryable(err) || i == len(r.retryDelays) {
			break
		}

		timer := time.NewTimer(r.retryDelays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// isRetryable сообщает, имеет ли смысл повторить операцию: конфликт сериализации,
// взаимоблокировка или обрыв соединения.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected ||
			pgerrcode.IsConnectionException(pgErr.Code)
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Ping проверяет доступность БД.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// RecentAirports возвращает недавно выбранные аэропорты указанного типа, начиная с последнего.
func (r *PostgresRepository) RecentAirports(ctx context.Context, clientID string, searchType model.SearchType) ([]model.AirportSelection, error) {
	if clientID == "" {
		return nil, history.ErrEmptyClientID
	}

	rows, err := r.pool.Query(ctx,
		`SELECT code, name, city, country, selected_at
		 FROM airport_history
		 WHERE client_id = $1 AND search_type = $2
		 ORDER BY seq DESC
		 LIMIT $3`,
		clientID, string(searchType), history.MaxAirportHistory,
	)
	if err != nil {
		return nil, fmt.Errorf("select airport history: %w", err)
	}
	defer rows.Close()

	res := make([]model.AirportSelection, 0)
	for rows.Next() {
		sel := model.AirportSelection{Type: searchType}
		if err := rows.Scan(&sel.Code, &sel.Name, &sel.City, &sel.Country, &sel.SelectedAt); err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		res = append(res, sel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// AppendAirport добавляет выбранный аэропорт и обрезает список его типа в той же транзакции.
func (r *PostgresRepository) AppendAirport(ctx context.Context, clientID string, sel model.AirportSelection) error {
	if clientID == "" {
		return history.ErrEmptyClientID
	}

	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		_, err = tx.Exec(ctx,
			`INSERT INTO airport_history (client_id, search_type, code, name, city, country, selected_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (client_id, search_type, code) DO UPDATE
			 SET name = EXCLUDED.name,
			     city = EXCLUDED.city,
			     country = EXCLUDED.country,
			     selected_at = EXCLUDED.selected_at,
			     seq = nextval('history_seq')`,
			clientID, string(sel.Type), sel.Code, sel.Name, sel.City, sel.Country, sel.SelectedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert airport: %w", err)
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM airport_history
			 WHERE client_id = $1 AND search_type = $2
			   AND code NOT IN (
			     SELECT code FROM airport_history
			     WHERE client_id = $1 AND search_type = $2
			     ORDER BY seq DESC
			     LIMIT $3
			   )`,
			clientID, string(sel.Type), history.MaxAirportHistory,
		)
		if err != nil {
			return fmt.Errorf("trim airport history: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// ClearAirports удаляет все недавно выбранные аэропорты клиента.
func (r *PostgresRepository) ClearAirports(ctx context.Context, clientID string) error {
	if clientID == "" {
		return history.ErrEmptyClientID
	}

	_, err := r.pool.Exec(ctx, `DELETE FROM airport_history WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("delete airport history: %w", err)
	}
	return nil
}

// RecentSearches возвращает историю поиска клиента, начиная с последнего.
func (r *PostgresRepository) RecentSearches(ctx context.Context, clientID string) ([]model.SearchHistoryEntry, error) {
	if clientID == "" {
		return nil, history.ErrEmptyClientID
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, origin, destination, departure_date, return_date, cabin_class, passengers, airline, results_count, created_at
		 FROM search_history
		 WHERE client_id = $1
		 ORDER BY seq DESC
		 LIMIT $2`,
		clientID, history.MaxSearchHistory,
	)
	if err != nil {
		return nil, fmt.Errorf("select search history: %w", err)
	}
	defer rows.Close()

	res := make([]model.SearchHistoryEntry, 0)
	for rows.Next() {
		var (
			e     model.SearchHistoryEntry
			cabin string
		)
		if err := rows.Scan(&e.ID, &e.Origin, &e.Destination, &e.DepartureDate, &e.ReturnDate,
			&cabin, &e.Passengers, &e.Airline, &e.ResultsCount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		e.CabinClass = model.CabinClass(cabin)
		res = append(res, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// AppendSearch сохраняет поиск в начало истории. Повтор маршрута с теми же датами заменяет
// прежнюю запись, самые старые записи сверх лимита удаляются в той же транзакции.
func (r *PostgresRepository) AppendSearch(ctx context.Context, clientID string, entry model.SearchHistoryEntry) error {
	if clientID == "" {
		return history.ErrEmptyClientID
	}

	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		_, err = tx.Exec(ctx,
			`INSERT INTO search_history
			   (id, client_id, origin, destination, departure_date, return_date, cabin_class, passengers, airline, results_count, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (client_id, origin, destination, departure_date, return_date) DO UPDATE
			 SET id = EXCLUDED.id,
			     cabin_class = EXCLUDED.cabin_class,
			     passengers = EXCLUDED.passengers,
			     airline = EXCLUDED.airline,
			     results_count = EXCLUDED.results_count,
			     created_at = EXCLUDED.created_at,
			     seq = nextval('history_seq')`,
			entry.ID, clientID, entry.Origin, entry.Destination, entry.DepartureDate, entry.ReturnDate,
			string(entry.CabinClass), entry.Passengers, entry.Airline, entry.ResultsCount, entry.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("upsert search: %w", err)
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM search_history
			 WHERE client_id = $1
			   AND id NOT IN (
			     SELECT id FROM search_history
			     WHERE client_id = $1
			     ORDER BY seq DESC
			     LIMIT $2
			   )`,
			clientID, history.MaxSearchHistory,
		)
		if err != nil {
			return fmt.Errorf("trim search history: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// ClearSearches удаляет историю поиска клиента.
func (r *PostgresRepository) ClearSearches(ctx context.Context, clientID string) error {
	if clientID == "" {
		return history.ErrEmptyClientID
	}

	_, err := r.pool.Exec(ctx, `DELETE FROM search_history WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("delete search history: %w", err)
	}
	return nil
}

// SearchByID возвращает запись истории по идентификатору.
func (r *PostgresRepository) SearchByID(ctx context.Context, clientID, id string) (*model.SearchHistoryEntry, error) {
	var (
		e     model.SearchHistoryEntry
		cabin string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, origin, destination, departure_date, return_date, cabin_class, passengers, airline, results_count, created_at
		 FROM search_history
		 WHERE client_id = $1 AND id = $2`,
		clientID, id,
	).Scan(&e.ID, &e.Origin, &e.Destination, &e.DepartureDate, &e.ReturnDate,
		&cabin, &e.Passengers, &e.Airline, &e.ResultsCount, &e.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, history.ErrNotFound
		}
		return nil, fmt.Errorf("get search: %w", err)
	}
	e.CabinClass = model.CabinClass(cabin)
	return &e, nil
}
