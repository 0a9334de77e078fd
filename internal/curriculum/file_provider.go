package curriculum

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type fileSubject struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Hours        float64 `yaml:"hours"`
	MeetingCount int     `yaml:"meetings"`
}

type fileTrack struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Code     string        `yaml:"code"`
	Type     string        `yaml:"type"`
	CohortID string        `yaml:"cohort"`
	Subjects []fileSubject `yaml:"subjects"`
}

type fileTracks struct {
	Tracks []fileTrack `yaml:"tracks"`
}

// FileProvider implements Provider using a local YAML file
type FileProvider struct {
	filePath string
	logger   *zap.Logger

	mu     sync.RWMutex
	tracks []Track
	loaded bool
}

// NewFileProvider creates a new FileProvider instance
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads track data from file
func (fp *FileProvider) Load() error {
	raw, err := os.ReadFile(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open tracks file: %w", err)
	}

	var doc fileTracks
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse tracks file: %w", err)
	}

	tracks := make([]Track, 0, len(doc.Tracks))
	for _, ft := range doc.Tracks {
		typ, err := ParseTrackType(ft.Type)
		if err != nil {
			fp.logger.Warn("Skipping track with unknown type",
				zap.String("track", ft.Name),
				zap.String("type", ft.Type))
			continue
		}

		track := Track{
			ID:       ft.ID,
			Name:     ft.Name,
			Code:     ft.Code,
			Type:     typ,
			CohortID: ft.CohortID,
			Subjects: make([]Subject, 0, len(ft.Subjects)),
		}
		for _, fs := range ft.Subjects {
			track.Subjects = append(track.Subjects, Subject(fs))
		}
		tracks = append(tracks, track)
	}

	fp.mu.Lock()
	fp.tracks = tracks
	fp.loaded = true
	fp.mu.Unlock()

	fp.logger.Info("Tracks file loaded",
		zap.String("file", fp.filePath),
		zap.Int("tracks", len(tracks)))

	return nil
}

// TracksForCohort returns the loaded tracks that belong to the cohort
func (fp *FileProvider) TracksForCohort(_ context.Context, cohortID string) ([]Track, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	if !fp.loaded {
		return nil, fmt.Errorf("tracks file not loaded: %s", fp.filePath)
	}

	return Clone(ForCohort(fp.tracks, cohortID)), nil
}
