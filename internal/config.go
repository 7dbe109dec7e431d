package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvConfig   = "CHAT_WRAPPED_CONFIG"
	EnvYear     = "CHAT_WRAPPED_YEAR"
	EnvCacheDir = "CHAT_WRAPPED_CACHE_DIR"
	EnvWorkers  = "CHAT_WRAPPED_WORKERS"
	EnvMediaDir = "CHAT_WRAPPED_MEDIA_DIR"
)

// Duration is a time.Duration written as a Go duration string in YAML
type Duration time.Duration

// UnmarshalYAML accepts "1h", "5m30s" or a plain number of seconds
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds every analysis setting. Zero values fall back to defaults
// where one exists.
type Config struct {
	Year            int               `yaml:"year"`
	Aliases         map[string]string `yaml:"aliases"`
	ExcludedSenders []string          `yaml:"excluded_senders"`
	Locations       map[string]string `yaml:"locations"`
	TimezoneOffsets map[string]int    `yaml:"timezone_offsets"`
	ReferenceOffset int               `yaml:"reference_offset"`
	StarterGap      Duration          `yaml:"starter_gap"`
	SegmentGap      Duration          `yaml:"segment_gap"`
	MinSpanMessages int               `yaml:"min_span_messages"`
	ExtraStopwords  []string          `yaml:"extra_stopwords,omitempty"`
	SortMessages    bool              `yaml:"sort_messages"`
	MediaDir        string            `yaml:"media_dir,omitempty"`
	DurationsFile   string            `yaml:"durations_file,omitempty"`
	Workers         int               `yaml:"workers"`
	CacheDir        string            `yaml:"cache_dir,omitempty"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Aliases:         map[string]string{},
		ExcludedSenders: append([]string(nil), DefaultExcludedSenders...),
		Locations:       map[string]string{},
		TimezoneOffsets: map[string]int{
			"buenos_aires": -3,
			"us_east":      -5,
			"us_west":      -8,
			"spain":        2,
			"berlin":       2,
		},
		ReferenceOffset: -3,
		StarterGap:      Duration(DefaultStarterGap),
		SegmentGap:      Duration(DefaultSegmentGap),
		MinSpanMessages: DefaultMinSpanMessages,
		Workers:         1,
		CacheDir:        DefaultCacheDir(),
	}
}

// DefaultCacheDir returns ~/.chat-wrapped-cache
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chat-wrapped-cache"
	}
	return filepath.Join(home, ".chat-wrapped-cache")
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &ConfigError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Path: path, Err: fmt.Errorf("failed to unmarshal config: %w", err)}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, &ConfigError{Path: path, Err: err}
	}
	LogDebug("loaded config from %s", path)
	return cfg, nil
}

// LoadDotEnv loads .env from the working directory if present
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err == nil {
		LogDebug("loaded .env")
	}
}

// ConfigPathFromEnv returns the config path named by the environment
func ConfigPathFromEnv() string {
	return getEnv(EnvConfig, "")
}

// ApplyEnv overrides cfg with CHAT_WRAPPED_* environment variables
func ApplyEnv(cfg *Config) error {
	year, err := getEnvInt(EnvYear, cfg.Year)
	if err != nil {
		return &ConfigError{Path: EnvYear, Err: err}
	}
	workers, err := getEnvInt(EnvWorkers, cfg.Workers)
	if err != nil {
		return &ConfigError{Path: EnvWorkers, Err: err}
	}
	cfg.Year = year
	cfg.Workers = workers
	cfg.CacheDir = getEnv(EnvCacheDir, cfg.CacheDir)
	cfg.MediaDir = getEnv(EnvMediaDir, cfg.MediaDir)
	return nil
}

// Validate rejects settings the analysis cannot run with
func (c Config) Validate() error {
	if c.Year < 0 {
		return fmt.Errorf("year must not be negative: %d", c.Year)
	}
	if c.StarterGap < 0 || c.SegmentGap < 0 {
		return fmt.Errorf("gaps must not be negative")
	}
	starter, segment := time.Duration(c.StarterGap), time.Duration(c.SegmentGap)
	if starter <= 0 {
		starter = DefaultStarterGap
	}
	if segment <= 0 {
		segment = DefaultSegmentGap
	}
	if segment >= starter {
		return fmt.Errorf("segment_gap (%s) must be shorter than starter_gap (%s)", segment, starter)
	}
	if c.MinSpanMessages < 0 {
		return fmt.Errorf("min_span_messages must not be negative: %d", c.MinSpanMessages)
	}
	for sender, loc := range c.Locations {
		if _, ok := c.TimezoneOffsets[loc]; !ok {
			LogWarn("location %q for %s has no timezone offset, using reference", loc, sender)
		}
	}
	return nil
}

// Fingerprint hashes the settings that change analysis output
func (c Config) Fingerprint() string {
	c.Workers = 0
	c.CacheDir = ""
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Normalizer builds the sender normalizer
func (c Config) Normalizer() *Normalizer {
	return NewNormalizer(c.Aliases, c.ExcludedSenders)
}

// Classifier builds the message classifier
func (c Config) Classifier() *Classifier {
	return NewClassifier(c.Stopwords())
}

// Stopwords returns the built-in list plus any extra words
func (c Config) Stopwords() Stopwords {
	sw := DefaultStopwords()
	for _, w := range c.ExtraStopwords {
		sw[normalizeToken(w)] = struct{}{}
	}
	return sw
}

// Localizer builds the timezone localizer
func (c Config) Localizer() *Localizer {
	return NewLocalizer(c.ReferenceOffset, c.Locations, c.TimezoneOffsets)
}

// Segmenter builds the conversation segmenter
func (c Config) Segmenter() *Segmenter {
	return NewSegmenter(time.Duration(c.SegmentGap), c.MinSpanMessages)
}

// Durations returns the audio duration lookup. A missing index is not an
// error; durations then read as zero.
func (c Config) Durations() DurationLookup {
	if c.DurationsFile == "" {
		return NoDurations{}
	}
	idx, err := LoadDurationIndex(c.DurationsFile)
	if err != nil {
		LogWarn("audio durations unavailable: %v", err)
		return NoDurations{}
	}
	return idx
}

// Sizes returns the media size lookup
func (c Config) Sizes() SizeLookup {
	if c.MediaDir == "" {
		return NoSizes{}
	}
	return MediaDir(c.MediaDir)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid integer %q: %w", v, err)
	}
	return n, nil
}
