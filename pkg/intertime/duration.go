package intertime

import (
	"encoding/json"
	"time"
)

// Duration wraps time.Duration so it reads and writes JSON as a
// human-readable string such as "1h30m" or "250ms".
type Duration time.Duration

// FromMilliseconds converts a (possibly fractional) millisecond count.
func FromMilliseconds(ms float64) Duration {
	return Duration(time.Duration(ms * float64(time.Millisecond)))
}

// UnmarshalJSON accepts any string time.ParseDuration understands.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
