package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/catalog"
	"github.com/alexanderramin/examplan/internal/clock"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/ledger"
	"github.com/alexanderramin/examplan/internal/planner"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/service"
	"github.com/alexanderramin/examplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires an App over an in-memory SQLite store: a ten-day January
// plan with a revision every fifth day and today fixed at 2026-01-05. The
// user starts signed in as "tester".
func testApp(t *testing.T) *App {
	t.Helper()
	cat := testutil.NewTestCatalog(t, 8)
	gen, err := planner.New(cat, testutil.NewTestPolicy(
		testutil.Date("2026-01-01"), testutil.Date("2026-01-10"),
		testutil.WithRevisionEvery(5),
	))
	require.NoError(t, err)

	database := testutil.NewTestDB(t)
	c := clock.Fixed(testNow)
	ts := service.TimeSettings{Clock: c, Location: time.UTC, WeekStart: time.Monday}

	app := &App{
		Catalog: cat,
		User:    "tester",
		Now:     func() time.Time { return testNow.Add(time.Hour) },
	}
	l := ledger.New(
		repository.NewSQLiteProgressRepo(testutil.NewTestUoW(database), c),
		"progressData.tester",
		ledger.WithClock(c),
		ledger.WithRetry(1, 0),
		ledger.WithGate(ledger.GateFunc(func(context.Context) bool { return app.User != "" })),
	)
	app.Plan = service.NewPlanService(gen, l, ts)
	app.Progress = service.NewProgressService(l, gen.Generate(), repository.NewSQLiteEventRepo(database), ts)
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

// --- plan ---

func TestPlanList_GroupsByWeekAndMonth(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "Week 2")
	assert.Contains(t, out, "Topic 1")
	assert.Contains(t, out, "Weekly Revision")

	out, err = executeCmd(t, app, "plan", "list", "--group", "month")
	require.NoError(t, err)
	assert.Contains(t, out, "January 2026")
	assert.Contains(t, out, "0/10 done")

	_, err = executeCmd(t, app, "plan", "list", "--group", "year")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --group")
}

func TestPlanTable_FiltersByStatusAndQuery(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "done", "2026-01-01", "--confidence", "high")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "plan", "table", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Topic 1")
	assert.NotContains(t, out, "Topic 2")
	assert.Contains(t, out, "1 days")

	out, err = executeCmd(t, app, "plan", "table", "--status", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Topic 2")
	assert.NotContains(t, out, "Topic 1")
	assert.Contains(t, out, "3 days")

	out, err = executeCmd(t, app, "plan", "table", "-q", "revision")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-01-05")
	assert.Contains(t, out, "2026-01-10")
	assert.Contains(t, out, "2 days")

	_, err = executeCmd(t, app, "plan", "table", "--status", "someday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status filter")
}

func TestPlanCalendar(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "JANUARY 2026")
	assert.Contains(t, out, " 5●")

	out, err = executeCmd(t, app, "plan", "calendar", "--month", "2026-02")
	require.NoError(t, err)
	assert.Contains(t, out, "FEBRUARY 2026")
	assert.Contains(t, out, " 1·")

	_, err = executeCmd(t, app, "plan", "calendar", "--month", "Feb")
	require.Error(t, err)
}

// --- day / done / undo ---

func TestDay_DefaultsToToday(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "day")
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Revision")
	assert.Contains(t, out, "● TODAY")

	out, err = executeCmd(t, app, "day", "2026-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Topic 2")
	assert.Contains(t, out, "! LATE")
}

func TestDay_OutsidePlan(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "day", "2026-03-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDateOutsidePlan)

	_, err = executeCmd(t, app, "day", "01/03/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestDone_MarksDayComplete(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "done", "2026-01-03", "--confidence", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-01-03")
	assert.Contains(t, out, "Topic 3")
	assert.Contains(t, out, "high")

	row, err := app.Plan.Day(context.Background(), testutil.Date("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, row.Status)
	require.NotNil(t, row.Record)
	assert.Equal(t, domain.ConfidenceHigh, row.Record.Confidence)
}

func TestDone_DefaultsToMediumWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	app.PickConfidence = func(civil.Date) (domain.Confidence, error) {
		t.Fatal("picker must not run without a terminal")
		return "", nil
	}

	_, err := executeCmd(t, app, "done", "today")
	require.NoError(t, err)

	row, err := app.Plan.Day(context.Background(), testutil.Date("2026-01-05"))
	require.NoError(t, err)
	require.NotNil(t, row.Record)
	assert.Equal(t, domain.ConfidenceMedium, row.Record.Confidence)
}

func TestDone_InteractivePromptsForConfidence(t *testing.T) {
	app := testApp(t)
	app.Interactive = true
	var asked civil.Date
	app.PickConfidence = func(d civil.Date) (domain.Confidence, error) {
		asked = d
		return domain.ConfidenceLow, nil
	}

	out, err := executeCmd(t, app, "done", "2026-01-04")
	require.NoError(t, err)
	assert.Equal(t, testutil.Date("2026-01-04"), asked)
	assert.Contains(t, out, "low")

	app.PickConfidence = func(civil.Date) (domain.Confidence, error) {
		return "", errors.New("user aborted")
	}
	_, err = executeCmd(t, app, "done", "2026-01-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user aborted")

	row, err := app.Plan.Day(context.Background(), testutil.Date("2026-01-02"))
	require.NoError(t, err)
	assert.Nil(t, row.Record)
}

func TestDone_InvalidConfidence(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "done", "2026-01-03", "--confidence", "certain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid confidence")
}

func TestDone_RequiresSignIn(t *testing.T) {
	app := testApp(t)
	app.User = ""

	_, err := executeCmd(t, app, "done", "2026-01-03", "--confidence", "low")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "please sign in")
	assert.Contains(t, err.Error(), "--user")

	_, err = executeCmd(t, app, "--user", "alice", "done", "2026-01-03", "--confidence", "low")
	require.NoError(t, err)
	assert.Equal(t, "alice", app.User)

	// Reads stay open to anonymous sessions.
	app.User = ""
	out, err := executeCmd(t, app, "day", "2026-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ DONE")
}

func TestUndo_RevertsToDerivedStatus(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "done", "2026-01-03", "--confidence", "low")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "undo", "2026-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "! LATE")

	out, err = executeCmd(t, app, "undo", "2026-01-03")
	require.NoError(t, err, "undoing an open day is a no-op")
	assert.Contains(t, out, "! LATE")

	_, err = executeCmd(t, app, "undo", "2027-01-01")
	assert.ErrorIs(t, err, domain.ErrDateOutsidePlan)
}

// --- summary / history ---

func TestSummary(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "done", "2026-01-01", "--confidence", "high")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "10%")
	assert.Contains(t, out, "of 10 days")
	assert.Contains(t, out, "Paper I")
	assert.Contains(t, out, "Next: 2026-01-05")
}

func TestHistory_ListsNewestFirst(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "done", "2026-01-02", "--confidence", "medium")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "undo", "2026-01-02")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "↺ undo")
	assert.Contains(t, out, "✔ complete")
	assert.Contains(t, out, "cli")
	assert.Less(t, bytes.Index([]byte(out), []byte("undo")), bytes.Index([]byte(out), []byte("✔ complete")))

	out, err = executeCmd(t, app, "history", "--limit", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "✔ complete")

	_, err = executeCmd(t, app, "history", "--limit", "-1")
	require.Error(t, err)
}

func TestHistory_UnavailableWithoutEventStore(t *testing.T) {
	app := testApp(t)
	cat := testutil.NewTestCatalog(t, 2)
	plan := testutil.NewTestPlan(t, cat, testutil.NewTestPolicy(testutil.Date("2026-01-01"), testutil.Date("2026-01-02")))
	l := ledger.New(testutil.NewFailingStore(), "progressData")
	app.Progress = service.NewProgressService(l, plan, nil, service.TimeSettings{Clock: clock.Fixed(testNow)})

	_, err := executeCmd(t, app, "history")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrHistoryUnavailable)
	assert.Contains(t, err.Error(), "sqlite")
}

// --- export ---

func TestExport_WritesFilteredCSV(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "done", "2026-01-01", "--confidence", "high")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plan.csv")
	out, err := executeCmd(t, app, "export", "--out", path, "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 days")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "date,weekday,category,type,title,status,confidence,completed_at")
	assert.Contains(t, string(data), "2026-01-01")
	assert.Contains(t, string(data), "high")
	assert.NotContains(t, string(data), "2026-01-02")
}

func TestExport_JSONAndBadFormat(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "plan.json")

	_, err := executeCmd(t, app, "export", "--format", "json", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"count": 10`)

	_, err = executeCmd(t, app, "export", "--format", "xlsx", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid export format")
}

// --- catalog ---

func TestCatalogList(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Topic 8")
	assert.Contains(t, out, "8 topics")
}

func TestCatalogValidate_SkipsSetup(t *testing.T) {
	app := &App{Setup: func(context.Context, *App, io.Writer) error {
		return errors.New("store unavailable")
	}}

	out, err := executeCmd(t, app, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in catalog is valid")

	_, err = executeCmd(t, app, "catalog", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: v1\nentries:\n  - topic: ''\n"), 0o644))
	_, err = executeCmd(t, app, "catalog", "validate", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCatalogValidate_File(t *testing.T) {
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	require.Positive(t, cat.Len())

	good := filepath.Join(t.TempDir(), "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`version: "2026.1"
entries:
  - topic: RTI Act
    category: Paper II
    units: 2
`), 0o644))

	out, err := executeCmd(t, &App{}, "catalog", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "1 topics, 2 units")
}

func TestParseDay(t *testing.T) {
	app := testApp(t)
	tests := []struct {
		in   string
		want string
	}{
		{"", "2026-01-05"},
		{"today", "2026-01-05"},
		{"Yesterday", "2026-01-04"},
		{"tomorrow", "2026-01-06"},
		{"2026-01-09", "2026-01-09"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := parseDay(app, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
	_, err := parseDay(app, "2026-1-9")
	assert.Error(t, err)
}
