package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage depends on. Tests
// substitute a pgxmock pool through the same seam.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type webhookEventRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) WebhookEvents() repository.WebhookEventRepository {
	return &webhookEventRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            items JSONB NOT NULL,
            subtotal BIGINT NOT NULL,
            delivery_fee BIGINT NOT NULL,
            total BIGINT NOT NULL,
            customer_name TEXT NOT NULL DEFAULT '',
            customer_phone TEXT NOT NULL DEFAULT '',
            customer_address TEXT NOT NULL DEFAULT '',
            customer_postal_code TEXT NOT NULL DEFAULT '',
            customer_city TEXT NOT NULL DEFAULT '',
            delivery_mode TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            payment_session_id TEXT UNIQUE,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS webhook_events (
            id TEXT PRIMARY KEY,
            event_type TEXT NOT NULL,
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// lineItem is the JSONB encoding of a single order line.
type lineItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

func encodeItems(items []model.OrderItem) ([]byte, error) {
	lines := make([]lineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, lineItem{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return json.Marshal(lines)
}

func decodeItems(raw []byte) ([]model.OrderItem, error) {
	var lines []lineItem
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	items := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return items, nil
}

const orderColumns = `id, items, subtotal, delivery_fee, total,
       customer_name, customer_phone, customer_address, customer_postal_code, customer_city,
       delivery_mode, payment_method, payment_session_id, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o         model.Order
		rawItems  []byte
		sessionID *string
	)
	err := row.Scan(
		&o.ID, &rawItems, &o.Subtotal, &o.DeliveryFee, &o.Total,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Address, &o.Customer.PostalCode, &o.Customer.City,
		&o.DeliveryMode, &o.PaymentMethod, &sessionID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.Items, err = decodeItems(rawItems); err != nil {
		return nil, err
	}
	if sessionID != nil {
		o.PaymentSessionID = *sessionID
	}
	return &o, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, items, subtotal, delivery_fee, total,
                       customer_name, customer_phone, customer_address, customer_postal_code, customer_city,
                       delivery_mode, payment_method, payment_session_id, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
                   RETURNING created_at, updated_at`

	rawItems, err := encodeItems(order.Items)
	if err != nil {
		return nil, err
	}

	var sessionID *string
	if order.PaymentSessionID != "" {
		sessionID = &order.PaymentSessionID
	}

	stored := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, rawItems, order.Subtotal, order.DeliveryFee, order.Total,
		order.Customer.Name, order.Customer.Phone, order.Customer.Address, order.Customer.PostalCode, order.Customer.City,
		order.DeliveryMode, order.PaymentMethod, sessionID, order.Status,
	).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_session_id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{limit}
	if status != "" {
		query += ` WHERE status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1 AND created_at < $2
              ORDER BY created_at
              LIMIT $3`
	cutoff := time.Now().Add(-olderThan)

	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPendingPayment, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	query := `UPDATE orders SET status=$1, updated_at=NOW()
              WHERE payment_session_id=$2 AND status=$3
              RETURNING ` + orderColumns

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query,
		model.OrderStatusPaidOnline, sessionID, model.OrderStatusPendingPayment))
	if err == nil {
		return order, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// CAS miss: either the session is unknown or the order already advanced.
	existing, err := r.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *orderRepository) AdvanceStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$1, updated_at=NOW()
              WHERE id=$2 AND status=$3
              RETURNING ` + orderColumns

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, to, orderID, from))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// The row moved under us or never existed.
	if _, err := r.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return nil, domainErrors.ErrInvalidTransition
}

// --- WebhookEventRepository implementation ---

func (r *webhookEventRepository) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	const query = `INSERT INTO webhook_events (id, event_type) VALUES ($1, $2)
                   ON CONFLICT (id) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, eventID, eventType)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
