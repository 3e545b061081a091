package clock

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestToday_UsesLocation(t *testing.T) {
	// 23:30 UTC on Jan 4 is already Jan 5 in Kolkata (+05:30).
	c := Fixed(time.Date(2026, 1, 4, 23, 30, 0, 0, time.UTC))
	kolkata := time.FixedZone("IST", 5*3600+1800)

	assert.Equal(t, civil.Date{Year: 2026, Month: 1, Day: 4}, Today(c, time.UTC))
	assert.Equal(t, civil.Date{Year: 2026, Month: 1, Day: 5}, Today(c, kolkata))
}

func TestFixedDate(t *testing.T) {
	d := civil.Date{Year: 2026, Month: 3, Day: 9}
	assert.Equal(t, d, Today(FixedDate(d), time.UTC))
}
