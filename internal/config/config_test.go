package config

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "2026-01-01", cfg.WindowStart.String())
	assert.Equal(t, "2026-12-31", cfg.WindowEnd.String())
	assert.Equal(t, 1, cfg.DailyUnits)
	assert.Equal(t, 7, cfg.RevisionEvery)
	assert.Equal(t, 30, cfg.MockEvery)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 3, cfg.SaveAttempts)
	assert.False(t, cfg.SignedIn())
	assert.Equal(t, "progressData", cfg.ProgressKey())
	assert.Contains(t, cfg.DBPath, "examplan.db")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EXAMPLAN_DB", "/tmp/x.db")
	t.Setenv("EXAMPLAN_STORE", "File")
	t.Setenv("EXAMPLAN_DATA_DIR", "/tmp/data")
	t.Setenv("EXAMPLAN_CATALOG", "syllabus.yaml")
	t.Setenv("EXAMPLAN_USER", "alice")
	t.Setenv("EXAMPLAN_TZ", "UTC")
	t.Setenv("EXAMPLAN_WEEK_START", "monday")
	t.Setenv("EXAMPLAN_LOG_USE_CASES", "true")
	t.Setenv("EXAMPLAN_WINDOW_START", "2026-02-01")
	t.Setenv("EXAMPLAN_WINDOW_END", "2026-06-30")
	t.Setenv("EXAMPLAN_DAILY_UNITS", "2")
	t.Setenv("EXAMPLAN_REVISION_EVERY", "0")
	t.Setenv("EXAMPLAN_MOCK_EVERY", "14")
	t.Setenv("EXAMPLAN_ROUNDS", "2")
	t.Setenv("EXAMPLAN_BLACKOUTS", "2026-01-26=Republic Day, 2026-08-15=Independence Day")
	t.Setenv("EXAMPLAN_STORE_TIMEOUT_MS", "500")
	t.Setenv("EXAMPLAN_SAVE_ATTEMPTS", "5")
	t.Setenv("EXAMPLAN_RETRY_DELAY_MS", "0")

	cfg := Load()
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "syllabus.yaml", cfg.CatalogPath)
	assert.Equal(t, "progressData.alice", cfg.ProgressKey())
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 500*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 5, cfg.SaveAttempts)
	assert.Zero(t, cfg.RetryDelay)

	p := cfg.Policy()
	require.NoError(t, p.Validate())
	assert.Equal(t, "2026-02-01", p.Window.Start.String())
	assert.Equal(t, "2026-06-30", p.Window.End.String())
	assert.Equal(t, 2, p.DailyUnits)
	assert.Zero(t, p.RevisionEvery)
	assert.Equal(t, 14, p.MockEvery)
	assert.Equal(t, 2, p.Rounds)
	assert.Equal(t, "Republic Day", p.Blackouts[civil.Date{Year: 2026, Month: 1, Day: 26}])
	assert.Len(t, p.Blackouts, 2)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("EXAMPLAN_STORE", "postgres")
	t.Setenv("EXAMPLAN_USER", "../../etc")
	t.Setenv("EXAMPLAN_TZ", "Mars/Olympus")
	t.Setenv("EXAMPLAN_WEEK_START", "friday")
	t.Setenv("EXAMPLAN_WINDOW_START", "01/02/2026")
	t.Setenv("EXAMPLAN_DAILY_UNITS", "0")
	t.Setenv("EXAMPLAN_REVISION_EVERY", "-3")
	t.Setenv("EXAMPLAN_STORE_TIMEOUT_MS", "soon")
	t.Setenv("EXAMPLAN_SAVE_ATTEMPTS", "0")

	cfg := Load()
	def := Default()
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.False(t, cfg.SignedIn())
	assert.Equal(t, def.Location, cfg.Location)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, def.WindowStart, cfg.WindowStart)
	assert.Equal(t, 1, cfg.DailyUnits)
	assert.Equal(t, 7, cfg.RevisionEvery)
	assert.Equal(t, def.StoreTimeout, cfg.StoreTimeout)
	assert.Equal(t, def.SaveAttempts, cfg.SaveAttempts)
}

func TestParseBlackouts(t *testing.T) {
	got, errs := ParseBlackouts("2026-01-26=Republic Day,bad=Thing,2026-10-02,,")
	assert.Len(t, errs, 1)
	assert.Equal(t, map[civil.Date]string{
		{Year: 2026, Month: 1, Day: 26}: "Republic Day",
		{Year: 2026, Month: 10, Day: 2}: "",
	}, got)
}

func TestParseWeekStart(t *testing.T) {
	wd, err := ParseWeekStart("Mon")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)
	_, err = ParseWeekStart("tuesday")
	assert.Error(t, err)
}

func TestWithUser(t *testing.T) {
	cfg, err := Default().WithUser(" alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.True(t, cfg.SignedIn())
	assert.Equal(t, "progressData.alice", cfg.ProgressKey())

	cfg, err = cfg.WithUser("")
	require.NoError(t, err)
	assert.False(t, cfg.SignedIn())
	assert.Equal(t, "progressData", cfg.ProgressKey())

	_, err = cfg.WithUser("../etc")
	assert.Error(t, err)
}
