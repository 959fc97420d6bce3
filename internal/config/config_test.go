package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[database]
host = "db"
port = 5432
user = "u"
password = "p"
dbname = "reservation"
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/Istanbul", cfg.BookingWindow.Timezone)
	assert.Equal(t, "friday", cfg.BookingWindow.OpeningWeekday)
	require.NotNil(t, cfg.BookingWindow.CloseDayOffset)
	assert.Equal(t, 3, *cfg.BookingWindow.CloseDayOffset)
	assert.Equal(t, 30, cfg.SlotRules.StepMinutes)
	assert.Equal(t, []TimeRange{{Start: "08:30", End: "12:00"}, {Start: "13:30", End: "17:00"}}, cfg.SlotRules.Ranges)
	assert.Equal(t, 14, cfg.Eligibility.MinGapDays)
	assert.Equal(t, 120, cfg.Cancellation.LeadTimeMinutes)
	assert.Equal(t, 16, cfg.Fanout.SubscriberBuffer)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=reservation sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[booking_window]
timezone = "UTC"
opening_weekday = "Monday"
close_day_offset = 4

[[slot_rules.ranges]]
start = "10:00"
end = "14:00"

[rate_limit]
enabled = true
limit = 3
window_seconds = 10
`))
	require.NoError(t, err)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, 4, *cfg.BookingWindow.CloseDayOffset)
	assert.Equal(t, []TimeRange{{Start: "10:00", End: "14:00"}}, cfg.SlotRules.Ranges)
	assert.Equal(t, 3, cfg.RateLimit.Limit)
}

func TestLoad_ZeroCloseDayOffset(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[booking_window]\nclose_day_offset = 0\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.BookingWindow.CloseDayOffset)
	assert.Equal(t, 0, *cfg.BookingWindow.CloseDayOffset, "explicit zero closes on monday of the active week")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown timezone", content: "[booking_window]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "unknown weekday", content: "[booking_window]\nopening_weekday = \"funday\"\n"},
		{name: "close offset", content: "[booking_window]\nclose_day_offset = 9\n"},
		{name: "negative close offset", content: "[booking_window]\nclose_day_offset = -1\n"},
		{name: "tiny step", content: "[slot_rules]\nstep_minutes = 1\n"},
		{name: "malformed toml", content: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("FRIDAY")
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	d, err = ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, 7, d)

	_, err = ParseWeekday("")
	assert.Error(t, err)
}
