package timefmt

import "testing"

func TestElapsed(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{1000, "00:01"},
		{61000, "01:01"},
		{5*60000 + 7*1000, "05:07"},
		{-500, "00:00"},
		{65 * 60000, "65:00"},
	}
	for _, tc := range cases {
		if got := Elapsed(tc.ms); got != tc.want {
			t.Errorf("Elapsed(%d) = %s, want %s", tc.ms, got, tc.want)
		}
	}
}
