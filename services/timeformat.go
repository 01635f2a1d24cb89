package services

import (
	"fmt"
	"strings"
	"time"

	"CopiaTrack/models"
)

// ParseDisplay converts a display timestamp ("05/12/2024, 14:30") into a
// time.Time. Inputs that do not have the two-field "date, time" shape are
// rejected.
func ParseDisplay(value string) (time.Time, error) {
	parts := strings.SplitN(value, ", ", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("timestamp %q is not in \"dd/mm/yyyy, HH:MM\" form", value)
	}
	ts, err := time.ParseInLocation(models.DisplayLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}
	return ts, nil
}

// FormatDisplay renders a timestamp in the display format shown to the
// operator.
func FormatDisplay(ts time.Time) string {
	return ts.Format(models.DisplayLayout)
}

// ParseStorage converts a stored timestamp ("2024-12-05 14:30:00") into a
// time.Time.
func ParseStorage(value string) (time.Time, error) {
	ts, err := time.ParseInLocation(models.StorageLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored timestamp %q: %w", value, err)
	}
	return ts, nil
}

// FormatStorage renders a timestamp in the storage format. Seconds are
// fixed to :00, matching what the stores hold.
func FormatStorage(ts time.Time) string {
	return ts.Truncate(time.Minute).Format(models.StorageLayout)
}
