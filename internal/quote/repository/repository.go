// Package repository provides PostgreSQL persistence for quote requests:
// the primary intake sink plus the queries backing the admin surface.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/apperr"
)

const quoteNotFoundMessage = "Quote not found"

// StoredQuote is a persisted quote row.
type StoredQuote struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Company      string       `json:"company"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Product      string       `json:"product"`
	Quantity     string       `json:"quantity,omitempty"`
	Unit         string       `json:"unit,omitempty"`
	Message      string       `json:"message,omitempty"`
	Location     string       `json:"location,omitempty"`
	RequiredDate string       `json:"requiredDate,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Status       quote.Status `json:"status"`
	ClientIP     string       `json:"-"`
	UserAgent    string       `json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	ContactedAt  *time.Time   `json:"contactedAt,omitempty"`
	QuotedAt     *time.Time   `json:"quotedAt,omitempty"`
}

// ListParams filters and paginates the admin quote listing.
type ListParams struct {
	Page   int
	Limit  int
	Status quote.Status
}

// ProductCount is one entry of the top-products analytics aggregate.
type ProductCount struct {
	Product string `json:"product"`
	Count   int    `json:"count"`
}

// Analytics is the admin dashboard aggregate.
type Analytics struct {
	Total          int            `json:"total"`
	Pending        int            `json:"pending"`
	Converted      int            `json:"converted"`
	ConversionRate float64        `json:"conversionRate"`
	TopProducts    []ProductCount `json:"topProducts"`
	Recent         []StoredQuote  `json:"recentQuotes"`
}

// Repo implements quote persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const quoteColumns = `id, name, company, email, phone, product, quantity, unit, message,
		location, required_date, notes, status, created_at, updated_at, contacted_at, quoted_at`

// Insert stores a new quote record and returns the generated identifier.
func (r *Repo) Insert(ctx context.Context, record quote.Record) (uuid.UUID, error) {
	query := `
		INSERT INTO quotes (
			name, company, email, phone, product, quantity, unit, message,
			location, required_date, notes, status, client_ip, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		record.Name, record.Company, record.Email, record.Phone,
		record.Product, record.Quantity, record.Unit, record.Message,
		record.Location, record.RequiredDate, record.Notes,
		string(record.Status), record.ClientIP, record.UserAgent,
		record.SubmittedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert quote: %w", err)
	}
	return id, nil
}

// GetByID retrieves a quote by its identifier.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (StoredQuote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	stored, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredQuote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return StoredQuote{}, fmt.Errorf("get quote by id: %w", err)
	}
	return stored, nil
}

// List retrieves quotes newest first with optional status filtering and
// pagination, returning the filtered total alongside the page.
func (r *Repo) List(ctx context.Context, params ListParams) ([]StoredQuote, int, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var statusParam interface{}
	if params.Status != "" {
		statusParam = string(params.Status)
	}

	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, statusParam, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	quotes, err := scanQuotes(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM quotes WHERE ($1::text IS NULL OR status = $1)`
	if err := r.pool.QueryRow(ctx, countQuery, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	return quotes, total, nil
}

// UpdateStatus transitions a quote to the given lifecycle state, stamping
// contacted_at / quoted_at for those transitions.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status quote.Status) (StoredQuote, error) {
	query := `
		UPDATE quotes
		SET status = $2,
			updated_at = NOW(),
			contacted_at = CASE WHEN $2 = 'contacted' THEN NOW() ELSE contacted_at END,
			quoted_at = CASE WHEN $2 = 'quoted' THEN NOW() ELSE quoted_at END
		WHERE id = $1
		RETURNING ` + quoteColumns

	row := r.pool.QueryRow(ctx, query, id, string(status))
	stored, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredQuote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return StoredQuote{}, fmt.Errorf("update quote status: %w", err)
	}
	return stored, nil
}

// Analytics computes the admin dashboard aggregate.
func (r *Repo) Analytics(ctx context.Context) (Analytics, error) {
	var result Analytics

	summary := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'converted')
		FROM quotes`
	if err := r.pool.QueryRow(ctx, summary).Scan(&result.Total, &result.Pending, &result.Converted); err != nil {
		return Analytics{}, fmt.Errorf("analytics summary: %w", err)
	}
	if result.Total > 0 {
		result.ConversionRate = float64(result.Converted) / float64(result.Total) * 100
	}

	topProducts := `
		SELECT product, COUNT(*) AS requests
		FROM quotes
		GROUP BY product
		ORDER BY requests DESC
		LIMIT 10`
	rows, err := r.pool.Query(ctx, topProducts)
	if err != nil {
		return Analytics{}, fmt.Errorf("analytics top products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc ProductCount
		if err := rows.Scan(&pc.Product, &pc.Count); err != nil {
			return Analytics{}, fmt.Errorf("scan product count: %w", err)
		}
		result.TopProducts = append(result.TopProducts, pc)
	}
	if err := rows.Err(); err != nil {
		return Analytics{}, fmt.Errorf("analytics top products: %w", err)
	}

	recent := `
		SELECT ` + quoteColumns + `
		FROM quotes
		ORDER BY created_at DESC
		LIMIT 5`
	recentRows, err := r.pool.Query(ctx, recent)
	if err != nil {
		return Analytics{}, fmt.Errorf("analytics recent: %w", err)
	}
	defer recentRows.Close()
	result.Recent, err = scanQuotes(recentRows)
	if err != nil {
		return Analytics{}, err
	}

	return result, nil
}

// ExportAll streams every quote newest first for CSV export.
func (r *Repo) ExportAll(ctx context.Context) ([]StoredQuote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("export quotes: %w", err)
	}
	defer rows.Close()

	return scanQuotes(rows)
}

// Ping reports database reachability for health checks.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanQuote(row pgx.Row) (StoredQuote, error) {
	var q StoredQuote
	var status string
	err := row.Scan(
		&q.ID, &q.Name, &q.Company, &q.Email, &q.Phone, &q.Product,
		&q.Quantity, &q.Unit, &q.Message, &q.Location, &q.RequiredDate,
		&q.Notes, &status, &q.CreatedAt, &q.UpdatedAt, &q.ContactedAt, &q.QuotedAt,
	)
	if err != nil {
		return StoredQuote{}, err
	}
	q.Status = quote.Status(status)
	return q, nil
}

func scanQuotes(rows pgx.Rows) ([]StoredQuote, error) {
	quotes := make([]StoredQuote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}
