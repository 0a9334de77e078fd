package holiday

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/database"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

const holidaysQuery = `
SELECT id::text, date, name, level,
       COALESCE(state_code, ''), COALESCE(ibge_code, ''), COALESCE(city, '')
FROM holidays
WHERE date BETWEEN $1 AND $2
  AND (level IN ('national', 'optional', 'municipal')
       OR ($3 <> '' AND upper(state_code) = upper($3)))
ORDER BY date, id`

// PostgresProvider implements Provider on top of a holidays table.
// State rows are filtered by the region's state in SQL. Municipal rows
// are all fetched, since a record may carry only an IBGE code or a city
// name, and are narrowed later by Applicable.
type PostgresProvider struct {
	db     database.Querier
	logger *zap.Logger
}

// NewPostgresProvider creates a new PostgresProvider
func NewPostgresProvider(db database.Querier, logger *zap.Logger) *PostgresProvider {
	return &PostgresProvider{
		db:     db,
		logger: logger,
	}
}

// Holidays queries records dated within [from, to] that may apply to region
func (pp *PostgresProvider) Holidays(ctx context.Context, from, to time.Time, region Location) ([]Holiday, error) {
	rows, err := pp.db.Query(ctx, holidaysQuery, dateutil.Day(from), dateutil.Day(to), region.State)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return nil, fmt.Errorf("holidays table is missing: %w", err)
		}
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := []Holiday{}
	for rows.Next() {
		var (
			h     Holiday
			level string
		)
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &level, &h.StateCode, &h.IBGECode, &h.City); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}

		h.Level, err = ParseLevel(level)
		if err != nil {
			pp.logger.Warn("Skipping holiday with unknown level",
				zap.String("id", h.ID),
				zap.String("level", level))
			continue
		}
		h.Date = dateutil.Day(h.Date)

		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	pp.logger.Debug("Holidays fetched from PostgreSQL",
		zap.String("region", region.String()),
		zap.Int("count", len(holidays)))

	return holidays, nil
}
