package timezone_test

import (
	"testing"
	"time"

	"zonelink/pkg/timezone"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	noonUTC := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	// UTC noon is 9 PM in Tokyo (UTC+9).
	got, err := timezone.FormatTime(noonUTC, "Asia/Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, "09:00:00 PM", got)

	got, err = timezone.FormatTime(noonUTC, "UTC")
	assert.NoError(t, err)
	assert.Equal(t, "12:00:00 PM", got)

	_, err = timezone.FormatTime(noonUTC, "Not/A_Zone")
	assert.ErrorIs(t, err, timezone.ErrUnknownTimezone)
}

func TestFormatDate(t *testing.T) {
	// 16:00 UTC on Jan 1 is already Jan 2 in Tokyo.
	instant := time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)

	got, err := timezone.FormatDate(instant, "Asia/Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, "Tue, Jan 2", got)

	got, err = timezone.FormatDate(instant, "UTC")
	assert.NoError(t, err)
	assert.Equal(t, "Mon, Jan 1", got)

	_, err = timezone.FormatDate(instant, "Not/A_Zone")
	assert.ErrorIs(t, err, timezone.ErrUnknownTimezone)
}

func TestOffset(t *testing.T) {
	january := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	july := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	offset, err := timezone.OffsetAt(january, "UTC")
	assert.NoError(t, err)
	assert.Equal(t, float64(0), offset)

	offset, err = timezone.Offset("UTC")
	assert.NoError(t, err)
	assert.Equal(t, float64(0), offset)

	offset, err = timezone.OffsetAt(january, "Asia/Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, float64(9), offset)

	// New York observes DST: -5 in winter, -4 in summer.
	offset, err = timezone.OffsetAt(january, "America/New_York")
	assert.NoError(t, err)
	assert.Equal(t, float64(-5), offset)

	offset, err = timezone.OffsetAt(july, "America/New_York")
	assert.NoError(t, err)
	assert.Equal(t, float64(-4), offset)

	// Kathmandu is UTC+5:45, a fractional offset.
	offset, err = timezone.OffsetAt(january, "Asia/Kathmandu")
	assert.NoError(t, err)
	assert.Equal(t, 5.75, offset)

	_, err = timezone.Offset("Not/A_Zone")
	assert.ErrorIs(t, err, timezone.ErrUnknownTimezone)
}

func TestGetInfo(t *testing.T) {
	info, err := timezone.GetInfo("America/New_York")
	assert.NoError(t, err)
	assert.Equal(t, "America/New_York", info.Timezone)
	assert.Equal(t, "America/New York", info.DisplayName)
	assert.WithinDuration(t, time.Now(), info.CurrentTime, 5*time.Second)
	assert.Contains(t, []float64{-5, -4}, info.Offset)

	info, err = timezone.GetInfo("UTC")
	assert.NoError(t, err)
	assert.Equal(t, float64(0), info.Offset)
	assert.Equal(t, "UTC", info.DisplayName)

	_, err = timezone.GetInfo("Not/A_Zone")
	assert.ErrorIs(t, err, timezone.ErrUnknownTimezone)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, timezone.Validate("Europe/London"))
	assert.ErrorIs(t, timezone.Validate("Europe/Atlantis"), timezone.ErrUnknownTimezone)
	assert.ErrorIs(t, timezone.Validate(""), timezone.ErrUnknownTimezone)
}
