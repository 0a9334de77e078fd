package curriculum

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/database"
)

const tracksQuery = `
SELECT t.id::text, t.name, COALESCE(t.code, ''), t.type, COALESCE(t.cohort_id::text, ''),
       COALESCE(s.id::text, ''), COALESCE(s.name, ''), COALESCE(s.hours, 0), COALESCE(s.meeting_count, 0)
FROM tracks t
LEFT JOIN subjects s ON s.track_id = t.id
WHERE t.cohort_id = $1 OR t.cohort_id IS NULL
ORDER BY t.position, t.id, s.position, s.id`

// PostgresProvider implements Provider on top of tracks/subjects tables
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

// TracksForCohort loads a cohort's tracks with their subjects in position order
func (pp *PostgresProvider) TracksForCohort(ctx context.Context, cohortID string) ([]Track, error) {
	rows, err := pp.db.Query(ctx, tracksQuery, cohortID)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return nil, fmt.Errorf("tracks table is missing: %w", err)
		}
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := []Track{}
	index := make(map[string]int)

	for rows.Next() {
		var (
			t        Track
			typeName string
			s        Subject
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &typeName, &t.CohortID,
			&s.ID, &s.Name, &s.Hours, &s.MeetingCount); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}

		i, seen := index[t.ID]
		if !seen {
			t.Type, err = ParseTrackType(typeName)
			if err != nil {
				pp.logger.Warn("Skipping track with unknown type",
					zap.String("id", t.ID),
					zap.String("type", typeName))
				index[t.ID] = -1
				continue
			}
			t.Subjects = []Subject{}
			tracks = append(tracks, t)
			i = len(tracks) - 1
			index[t.ID] = i
		}
		if i < 0 || s.ID == "" {
			continue
		}
		tracks[i].Subjects = append(tracks[i].Subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tracks: %w", err)
	}

	pp.logger.Debug("Tracks fetched from PostgreSQL",
		zap.String("cohort", cohortID),
		zap.Int("count", len(tracks)))

	return tracks, nil
}
