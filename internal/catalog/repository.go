package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/oemlink/oemlink/internal/tracing"
)

// PostgresRepository loads the supplier catalog from Postgres, the source of
// record in production deployments. The table is read once at startup; the
// engine never queries it per request.
type PostgresRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRepository creates a repository over an open database handle.
func NewPostgresRepository(db *sql.DB, logger *slog.Logger) *PostgresRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRepository{db: db, logger: logger}
}

// LoadAll reads every supplier row and builds the immutable Store.
// Any malformed row fails the whole load.
func (r *PostgresRepository) LoadAll(ctx context.Context) (store *Store, err error) {
	ctx, endSpan := tracing.StartDBSpan(ctx, "suppliers", tracing.DBOperationQuery)
	defer func() { endSpan(err) }()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, country, region, categories,
		       moq_min, price_min, price_max, lead_time_min_days, lead_time_max_days,
		       features, capabilities, languages, years_active, trust_score,
		       COALESCE(alibaba_company_url, ''), COALESCE(made_in_china_company_url, '')
		FROM suppliers
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var (
			s           Supplier
			featuresRaw []byte
		)
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Country, &s.Region, pq.Array(&s.Categories),
			&s.MOQMin, &s.PriceRange.Min, &s.PriceRange.Max,
			&s.LeadTimeDays.Min, &s.LeadTimeDays.Max,
			&featuresRaw, pq.Array(&s.Capabilities), pq.Array(&s.Languages),
			&s.YearsActive, &s.TrustScore,
			&s.AlibabaURL, &s.MadeInChinaURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		if len(featuresRaw) > 0 {
			if err := json.Unmarshal(featuresRaw, &s.Features); err != nil {
				return nil, fmt.Errorf("%w: supplier %s has invalid features JSON: %v", ErrMalformedRecord, s.ID, err)
			}
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate supplier rows: %w", err)
	}

	store, err = NewStore(suppliers)
	if err != nil {
		return nil, err
	}

	r.logger.Info("catalog loaded", "source", "postgres", "suppliers", store.Len())
	return store, nil
}
