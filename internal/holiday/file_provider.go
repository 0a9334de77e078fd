package holiday

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// fileHoliday is the YAML shape of a holiday record
type fileHoliday struct {
	ID       string `yaml:"id"`
	Date     string `yaml:"date"`
	Name     string `yaml:"name"`
	Level    string `yaml:"level"`
	State    string `yaml:"state"`
	IBGECode string `yaml:"ibge_code"`
	City     string `yaml:"city"`
}

type fileHolidays struct {
	Holidays []fileHoliday `yaml:"holidays"`
}

// FileProvider implements Provider using a local YAML file
type FileProvider struct {
	filePath string
	logger   *zap.Logger

	mu   sync.RWMutex
	data []Holiday
}

// NewFileProvider creates a new FileProvider instance
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads holiday data from file
func (fp *FileProvider) Load() error {
	raw, err := os.ReadFile(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holidays file: %w", err)
	}

	holidays, err := fp.parse(raw)
	if err != nil {
		return err
	}

	fp.mu.Lock()
	fp.data = holidays
	fp.mu.Unlock()

	fp.logger.Info("Holidays file loaded",
		zap.String("file", fp.filePath),
		zap.Int("holidays", len(holidays)))

	return nil
}

func (fp *FileProvider) parse(raw []byte) ([]Holiday, error) {
	var doc fileHolidays
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse holidays file: %w", err)
	}

	holidays := make([]Holiday, 0, len(doc.Holidays))
	for i, fh := range doc.Holidays {
		date, err := dateutil.ParseDate(fh.Date)
		if err != nil {
			fp.logger.Warn("Failed to parse holiday date",
				zap.Int("index", i),
				zap.String("date", fh.Date),
				zap.Error(err))
			continue
		}

		level, err := ParseLevel(fh.Level)
		if err != nil {
			fp.logger.Warn("Unknown holiday level",
				zap.Int("index", i),
				zap.String("level", fh.Level))
			continue
		}

		holidays = append(holidays, Holiday{
			ID:        fh.ID,
			Date:      date,
			Name:      fh.Name,
			Level:     level,
			StateCode: fh.State,
			IBGECode:  fh.IBGECode,
			City:      fh.City,
		})
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})

	return holidays, nil
}

// Holidays returns the loaded records dated within [from, to]
func (fp *FileProvider) Holidays(_ context.Context, from, to time.Time, _ Location) ([]Holiday, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	if fp.data == nil {
		return nil, fmt.Errorf("holidays file not loaded: %s", fp.filePath)
	}

	return Between(fp.data, from, to), nil
}
