package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/revaya/roicalc/internal/roi"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/roicalc.db"`
	RedisURL       string        `env:"REDIS_URL"`
	ResultsTTL     time.Duration `env:"RESULTS_TTL" envDefault:"24h"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir         string        `env:"SPA_DIR" envDefault:"web/dist"`
	FrameAncestors []string      `env:"FRAME_ANCESTORS" envDefault:"'self'" envSeparator:" "`

	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	ChromePath    string        `env:"CHROME_PATH"`
	ReportTimeout time.Duration `env:"REPORT_TIMEOUT" envDefault:"30s"`
	SubmitTimeout time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"10s"`

	WeeksPerMonth    float64            `env:"ROI_WEEKS_PER_MONTH" envDefault:"4.33"`
	NewBusinessShare float64            `env:"ROI_NEW_BUSINESS_SHARE" envDefault:"0.60"`
	AIAnswerRate     float64            `env:"ROI_AI_ANSWER_RATE" envDefault:"95"`
	CoverageFactors  map[string]float64 `env:"ROI_COVERAGE_FACTORS" envKeyValSeparator:":"`
	CoverageCeilings map[string]float64 `env:"ROI_COVERAGE_CEILINGS" envKeyValSeparator:":"`
}

// Load reads a .env file from the working directory when present, then
// parses the environment. Variables already set take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Policy builds the calculation constants, overlaying any configured tier
// factors and ceilings on the default coverage table.
func (c *Config) Policy() (roi.Policy, error) {
	p := roi.DefaultPolicy()
	p.WeeksPerMonth = c.WeeksPerMonth
	p.NewBusinessShare = c.NewBusinessShare
	p.AIAnswerRate = c.AIAnswerRate

	for tier, factor := range c.CoverageFactors {
		adj := p.Coverage[roi.Coverage(tier)]
		adj.Factor = factor
		p.Coverage[roi.Coverage(tier)] = adj
	}
	for tier, ceiling := range c.CoverageCeilings {
		adj := p.Coverage[roi.Coverage(tier)]
		adj.Ceiling = ceiling
		adj.HasCeiling = true
		p.Coverage[roi.Coverage(tier)] = adj
	}

	if err := p.Validate(); err != nil {
		return roi.Policy{}, fmt.Errorf("invalid roi policy: %w", err)
	}
	return p, nil
}
