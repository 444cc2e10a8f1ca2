// Package timefmt formats elapsed times for case documentation.
package timefmt

import "fmt"

// Elapsed renders a millisecond duration as mm:ss (e.g. 05:07). Durations of
// an hour or more keep counting minutes past 59.
func Elapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	m := ms / 60000
	s := (ms % 60000) / 1000
	return fmt.Sprintf("%02d:%02d", m, s)
}
