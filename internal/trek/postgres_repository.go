package trek

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/trekscout/trekscout/internal/database"
)

const trekColumns = `
	id, name, location, country, difficulty, duration, distance, max_elevation,
	best_months, climate, description, long_description, rating, review_count,
	image_url, highlights, requirements, price,
	provider, provider_url, provider_trek_id, last_updated, created_at`

// PostgresCatalog is a PostgreSQL implementation of Catalog.
type PostgresCatalog struct {
	db database.Querier
}

// NewPostgresCatalog creates a new PostgreSQL trek catalog.
func NewPostgresCatalog(db database.Querier) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// GetAll returns all treks in insertion order.
func (c *PostgresCatalog) GetAll(ctx context.Context) ([]*Trek, error) {
	query := `SELECT ` + trekColumns + ` FROM treks ORDER BY seq`

	rows, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query treks: %w", err)
	}
	defer rows.Close()

	var treks []*Trek
	for rows.Next() {
		t, err := scanTrek(rows)
		if err != nil {
			return nil, err
		}
		treks = append(treks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate treks: %w", err)
	}

	return treks, nil
}

// Get retrieves a trek by ID.
func (c *PostgresCatalog) Get(ctx context.Context, id string) (*Trek, error) {
	query := `SELECT ` + trekColumns + ` FROM treks WHERE id = $1`

	t, err := scanTrek(c.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrekNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByProviderIdentity retrieves a trek by provider identity.
func (c *PostgresCatalog) GetByProviderIdentity(ctx context.Context, provider Provider, providerTrekID string) (*Trek, error) {
	query := `SELECT ` + trekColumns + ` FROM treks WHERE provider = $1 AND provider_trek_id = $2`

	t, err := scanTrek(c.db.QueryRow(ctx, query, string(provider), providerTrekID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrekNotFound
		}
		return nil, err
	}
	return t, nil
}

// Insert stores a new trek.
func (c *PostgresCatalog) Insert(ctx context.Context, n NewTrek) (*Trek, error) {
	t := n.build(NewID(), time.Now().UTC())
	if err := c.store(ctx, t, ""); err != nil {
		return nil, err
	}
	return t, nil
}

// InsertIfAbsent inserts the trek unless its provider identity is taken.
// The unique provider index makes the insert atomic.
func (c *PostgresCatalog) InsertIfAbsent(ctx context.Context, n NewTrek) (*Trek, bool, error) {
	t := n.build(NewID(), time.Now().UTC())
	if t.ProviderKey() == "" {
		if err := c.store(ctx, t, ""); err != nil {
			return nil, false, err
		}
		return t, true, nil
	}

	conflict := `ON CONFLICT (provider, provider_trek_id) WHERE provider_trek_id IS NOT NULL DO NOTHING`
	err := c.store(ctx, t, conflict)
	if err == nil {
		return t, true, nil
	}
	if !errors.Is(err, errNotInserted) {
		return nil, false, err
	}

	existing, err := c.GetByProviderIdentity(ctx, t.Provider, *t.ProviderTrekID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Load inserts treks with their own IDs, skipping IDs that already exist.
// It is used to seed a fresh database.
func (c *PostgresCatalog) Load(ctx context.Context, treks []*Trek) (int, error) {
	loaded := 0
	for _, t := range treks {
		err := c.store(ctx, t, `ON CONFLICT (id) DO NOTHING`)
		if errors.Is(err, errNotInserted) {
			continue
		}
		if err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}

var errNotInserted = errors.New("trek not inserted")

func (c *PostgresCatalog) store(ctx context.Context, t *Trek, onConflict string) error {
	query := `
		INSERT INTO treks (` + trekColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		` + onConflict

	var requirements []byte
	if t.Requirements != nil {
		var err error
		requirements, err = json.Marshal(t.Requirements)
		if err != nil {
			return fmt.Errorf("marshal requirements: %w", err)
		}
	}

	tag, err := c.db.Exec(ctx, query,
		t.ID,
		t.Name,
		t.Location,
		t.Country,
		string(t.Difficulty),
		t.Duration,
		t.Distance,
		t.MaxElevation,
		t.BestMonths,
		t.Climate,
		t.Description,
		t.LongDescription,
		t.Rating,
		t.ReviewCount,
		t.ImageURL,
		t.Highlights,
		requirements,
		t.Price,
		string(t.Provider),
		t.ProviderURL,
		t.ProviderTrekID,
		t.LastUpdated,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trek: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errNotInserted
	}
	return nil
}

func scanTrek(row pgx.Row) (*Trek, error) {
	var (
		t            Trek
		difficulty   string
		provider     string
		requirements []byte
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Location,
		&t.Country,
		&difficulty,
		&t.Duration,
		&t.Distance,
		&t.MaxElevation,
		&t.BestMonths,
		&t.Climate,
		&t.Description,
		&t.LongDescription,
		&t.Rating,
		&t.ReviewCount,
		&t.ImageURL,
		&t.Highlights,
		&requirements,
		&t.Price,
		&provider,
		&t.ProviderURL,
		&t.ProviderTrekID,
		&t.LastUpdated,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Difficulty = Difficulty(difficulty)
	t.Provider = Provider(provider)
	if len(requirements) > 0 {
		var req Requirements
		if err := json.Unmarshal(requirements, &req); err != nil {
			return nil, fmt.Errorf("unmarshal requirements: %w", err)
		}
		t.Requirements = &req
	}

	return &t, nil
}

// Ensure PostgresCatalog implements Catalog interface.
var _ Catalog = (*PostgresCatalog)(nil)
