// Package config reads examplan settings from EXAMPLAN_* environment
// variables over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/ledger"
	"github.com/alexanderramin/examplan/internal/planner"
)

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreFile   StoreKind = "file"
	StoreMemory StoreKind = "memory"
)

// ProgressKeyPrefix is the storage key of the anonymous ledger; signed-in
// users get "<prefix>.<user>".
const ProgressKeyPrefix = "progressData"

var userPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]{0,63}$`)

// Config holds every runtime setting.
type Config struct {
	DBPath      string
	Store       StoreKind
	DataDir     string
	CatalogPath string // empty means the built-in syllabus
	User        string // empty means anonymous
	Location    *time.Location
	WeekStart   time.Weekday
	LogUseCases bool

	WindowStart   civil.Date
	WindowEnd     civil.Date
	DailyUnits    int
	RevisionEvery int
	MockEvery     int
	Rounds        int
	Blackouts     map[civil.Date]string

	StoreTimeout time.Duration
	SaveAttempts int
	RetryDelay   time.Duration
}

// Default returns the configuration used when no variables are set: the
// 2026 calendar year over the built-in syllabus, stored in ~/.examplan.
func Default() Config {
	policy := planner.DefaultPolicy()
	base := baseDir()
	return Config{
		DBPath:        filepath.Join(base, "examplan.db"),
		Store:         StoreSQLite,
		DataDir:       filepath.Join(base, "data"),
		Location:      time.Local,
		WeekStart:     time.Sunday,
		WindowStart:   policy.Window.Start,
		WindowEnd:     policy.Window.End,
		DailyUnits:    policy.DailyUnits,
		RevisionEvery: policy.RevisionEvery,
		MockEvery:     policy.MockEvery,
		Rounds:        policy.Rounds,
		Blackouts:     map[civil.Date]string{},
		StoreTimeout:  ledger.DefaultTimeout,
		SaveAttempts:  ledger.DefaultAttempts,
		RetryDelay:    ledger.DefaultRetryDelay,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or invalid values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("EXAMPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("EXAMPLAN_STORE"); v != "" {
		switch k := StoreKind(strings.ToLower(v)); k {
		case StoreSQLite, StoreFile, StoreMemory:
			cfg.Store = k
		}
	}
	if v := os.Getenv("EXAMPLAN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("EXAMPLAN_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("EXAMPLAN_USER")); userPattern.MatchString(v) {
		cfg.User = v
	}
	if v := os.Getenv("EXAMPLAN_TZ"); v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			cfg.Location = loc
		}
	}
	if v := os.Getenv("EXAMPLAN_WEEK_START"); v != "" {
		if wd, err := ParseWeekStart(v); err == nil {
			cfg.WeekStart = wd
		}
	}
	if v := os.Getenv("EXAMPLAN_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	applyDateEnv(&cfg.WindowStart, "EXAMPLAN_WINDOW_START")
	applyDateEnv(&cfg.WindowEnd, "EXAMPLAN_WINDOW_END")
	applyIntEnv(&cfg.DailyUnits, "EXAMPLAN_DAILY_UNITS", 1)
	applyIntEnv(&cfg.RevisionEvery, "EXAMPLAN_REVISION_EVERY", 0)
	applyIntEnv(&cfg.MockEvery, "EXAMPLAN_MOCK_EVERY", 0)
	applyIntEnv(&cfg.Rounds, "EXAMPLAN_ROUNDS", 1)
	applyIntEnv(&cfg.SaveAttempts, "EXAMPLAN_SAVE_ATTEMPTS", 1)
	applyMillisEnv(&cfg.StoreTimeout, "EXAMPLAN_STORE_TIMEOUT_MS", 1)
	applyMillisEnv(&cfg.RetryDelay, "EXAMPLAN_RETRY_DELAY_MS", 0)

	if v := os.Getenv("EXAMPLAN_BLACKOUTS"); v != "" {
		blackouts, _ := ParseBlackouts(v)
		for d, label := range blackouts {
			cfg.Blackouts[d] = label
		}
	}

	return cfg
}

// Policy builds the planner policy from the window and cadence settings.
func (c Config) Policy() planner.Policy {
	p := planner.DefaultPolicy()
	p.Window = planner.Window{Start: c.WindowStart, End: c.WindowEnd}
	p.DailyUnits = c.DailyUnits
	p.RevisionEvery = c.RevisionEvery
	p.MockEvery = c.MockEvery
	p.Rounds = c.Rounds
	p.Blackouts = make(map[civil.Date]string, len(c.Blackouts))
	for d, label := range c.Blackouts {
		p.Blackouts[d] = label
	}
	return p
}

// WithUser returns a copy of c signed in as user. An empty user signs out.
func (c Config) WithUser(user string) (Config, error) {
	user = strings.TrimSpace(user)
	if user != "" && !userPattern.MatchString(user) {
		return c, fmt.Errorf("invalid user %q (letters, digits and ._@- only)", user)
	}
	c.User = user
	return c, nil
}

// SignedIn reports whether a user is configured.
func (c Config) SignedIn() bool { return c.User != "" }

// ProgressKey returns the ledger storage key for the configured user.
func (c Config) ProgressKey() string {
	if c.User == "" {
		return ProgressKeyPrefix
	}
	return ProgressKeyPrefix + "." + c.User
}

// ParseBlackouts parses "YYYY-MM-DD=Label,YYYY-MM-DD=Label". A bare date
// gets an empty label. Bad pairs are skipped and reported.
func ParseBlackouts(s string) (map[civil.Date]string, []error) {
	out := make(map[civil.Date]string)
	var errs []error
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		datePart, label, _ := strings.Cut(pair, "=")
		d, err := civil.ParseDate(strings.TrimSpace(datePart))
		if err != nil {
			errs = append(errs, fmt.Errorf("blackout %q: invalid date", pair))
			continue
		}
		out[d] = strings.TrimSpace(label)
	}
	return out, errs
}

// ParseWeekStart accepts "sunday" or "monday".
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("invalid week start %q (expected sunday or monday)", s)
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".examplan"
	}
	return filepath.Join(home, ".examplan")
}

func applyDateEnv(dst *civil.Date, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	if d, err := civil.ParseDate(strings.TrimSpace(v)); err == nil {
		*dst = d
	}
}

func applyIntEnv(dst *int, envName string, min int) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return
	}
	*dst = n
}

func applyMillisEnv(dst *time.Duration, envName string, min int) {
	ms := -1
	applyIntEnv(&ms, envName, min)
	if ms >= 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}
