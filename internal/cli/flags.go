package cli

import (
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/export"
	"github.com/alexanderramin/examplan/internal/views"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*confidenceValue)(nil)
	_ pflag.Value = (*filterStatusValue)(nil)
	_ pflag.Value = (*formatValue)(nil)
)

// confidenceValue validates --confidence at parse time.
type confidenceValue domain.Confidence

func (v *confidenceValue) String() string { return string(*v) }

func (v *confidenceValue) Set(s string) error {
	c, err := domain.ParseConfidence(s)
	if err != nil {
		return err
	}
	*v = confidenceValue(c)
	return nil
}

func (v *confidenceValue) Type() string { return "low|medium|high" }

type filterStatusValue views.FilterStatus

func (v *filterStatusValue) String() string { return string(*v) }

func (v *filterStatusValue) Set(s string) error {
	f, err := views.ParseFilterStatus(s)
	if err != nil {
		return err
	}
	*v = filterStatusValue(f)
	return nil
}

func (v *filterStatusValue) Type() string { return "all|completed|overdue|pending" }

type formatValue export.Format

func (v *formatValue) String() string { return string(*v) }

func (v *formatValue) Set(s string) error {
	f, err := export.ParseFormat(s)
	if err != nil {
		return err
	}
	*v = formatValue(f)
	return nil
}

func (v *formatValue) Type() string { return "csv|json" }

// addFilterFlags registers --status and --query on fs.
func addFilterFlags(fs *pflag.FlagSet, status *filterStatusValue, query *string) {
	*status = filterStatusValue(views.FilterAll)
	fs.Var(status, "status", "filter by status")
	fs.StringVarP(query, "query", "q", "", "case-insensitive title search")
}
