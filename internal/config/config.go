package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Theory placement strategies
const (
	StrategyMeetingCount = "meeting-count"
	StrategyRotation     = "rotation"
)

// Config represents application configuration
type Config struct {
	Policy PolicyConfig `mapstructure:"policy"`
	Data   DataConfig   `mapstructure:"data"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

// PolicyConfig holds the program rules the generator enforces
type PolicyConfig struct {
	MinContractMonths     float64 `mapstructure:"min_contract_months" validate:"gt=0"`
	MaxContractMonths     float64 `mapstructure:"max_contract_months" validate:"gtfield=MinContractMonths"`
	MinVacationOffsetDays int     `mapstructure:"min_vacation_offset_days" validate:"gte=0"`
	VacationStartMonths   []int   `mapstructure:"vacation_start_months" validate:"dive,min=1,max=12"`

	OnboardingDays       int     `mapstructure:"onboarding_days" validate:"gt=0"`
	HoursPerDay          float64 `mapstructure:"hours_per_day" validate:"gt=0"`
	WeeklyHourBudget     float64 `mapstructure:"weekly_hour_budget" validate:"gt=0"`
	PracticalDaysPerWeek int     `mapstructure:"practical_days_per_week" validate:"min=0,max=5"`
	SafetyHorizonYears   int     `mapstructure:"safety_horizon_years" validate:"gt=0"`

	TheoryStrategy   string   `mapstructure:"theory_strategy" validate:"oneof=meeting-count rotation"`
	RotationSubjects []string `mapstructure:"rotation_subjects" validate:"min=1,dive,required"`
}

// DataConfig selects where holidays, tracks and students come from
type DataConfig struct {
	Source       string `mapstructure:"source" validate:"oneof=file postgres"` // "file" or "postgres"
	HolidaysFile string `mapstructure:"holidays_file"`
	TracksFile   string `mapstructure:"tracks_file"`
	StudentsFile string `mapstructure:"students_file" validate:"required"`
	PostgresDSN  string `mapstructure:"postgres_dsn"`

	// FallbackToFile keeps the YAML files as a fallback behind postgres
	FallbackToFile bool `mapstructure:"fallback_to_file"`
}

// CacheConfig represents reference data cache configuration
type CacheConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=none memory redis"`
	TTL       string `mapstructure:"ttl"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	RedisPass string `mapstructure:"redis_password"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultRotationSubjects is the weekly theory rotation used when the
// config does not provide one.
var DefaultRotationSubjects = []string{
	"Communication and Expression",
	"Ethics and Citizenship",
	"Basic Computing",
	"Applied Mathematics",
	"General Administration",
	"People Management",
	"Labor Legislation",
	"Quality and Productivity",
}

// DefaultPolicy returns the program policy used when nothing is configured
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		MinContractMonths:     6,
		MaxContractMonths:     24,
		MinVacationOffsetDays: 90,
		VacationStartMonths:   []int{1, 6, 7, 12},
		OnboardingDays:        10,
		HoursPerDay:           8,
		WeeklyHourBudget:      32,
		PracticalDaysPerWeek:  4,
		SafetyHorizonYears:    3,
		TheoryStrategy:        StrategyMeetingCount,
		RotationSubjects:      append([]string(nil), DefaultRotationSubjects...),
	}
}

func setDefaults(v *viper.Viper) {
	p := DefaultPolicy()
	v.SetDefault("policy.min_contract_months", p.MinContractMonths)
	v.SetDefault("policy.max_contract_months", p.MaxContractMonths)
	v.SetDefault("policy.min_vacation_offset_days", p.MinVacationOffsetDays)
	v.SetDefault("policy.vacation_start_months", p.VacationStartMonths)
	v.SetDefault("policy.onboarding_days", p.OnboardingDays)
	v.SetDefault("policy.hours_per_day", p.HoursPerDay)
	v.SetDefault("policy.weekly_hour_budget", p.WeeklyHourBudget)
	v.SetDefault("policy.practical_days_per_week", p.PracticalDaysPerWeek)
	v.SetDefault("policy.safety_horizon_years", p.SafetyHorizonYears)
	v.SetDefault("policy.theory_strategy", p.TheoryStrategy)
	v.SetDefault("policy.rotation_subjects", p.RotationSubjects)

	v.SetDefault("data.source", "file")
	v.SetDefault("data.holidays_file", "data/holidays.yaml")
	v.SetDefault("data.tracks_file", "data/tracks.yaml")
	v.SetDefault("data.students_file", "data/students.yaml")

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("log.level", "info")
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendar-gen")
		v.AddConfigPath("/etc/calendar-gen")
	}

	// CALGEN_DATA_POSTGRES_DSN overrides data.postgres_dsn, and so on
	v.SetEnvPrefix("calgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

var validate = validator.New()

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return err
	}

	if err := validate.Struct(c.Data); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if err := validate.Struct(c.Cache); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	switch c.Data.Source {
	case "file":
		if c.Data.HolidaysFile == "" {
			return fmt.Errorf("data.holidays_file is required for file source")
		}
		if c.Data.TracksFile == "" {
			return fmt.Errorf("data.tracks_file is required for file source")
		}
	case "postgres":
		if c.Data.PostgresDSN == "" {
			return fmt.Errorf("data.postgres_dsn is required for postgres source")
		}
	}

	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for redis backend")
	}

	return nil
}

// Validate validates the policy rules
func (p *PolicyConfig) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if p.PracticalDaysPerWeek > 4 {
		return fmt.Errorf("policy.practical_days_per_week must leave room for the theory day, got %d", p.PracticalDaysPerWeek)
	}
	return nil
}

// GetTTL returns cache TTL duration
func (c *CacheConfig) GetTTL() time.Duration {
	if c.TTL == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Data.PostgresDSN = os.ExpandEnv(c.Data.PostgresDSN)
	c.Cache.RedisPass = os.ExpandEnv(c.Cache.RedisPass)
}
