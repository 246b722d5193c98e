package countdown

import "fmt"

// Format renders a non-negative number of seconds for the dial.
// Under a minute it is the bare number, otherwise minutes:seconds with the
// seconds zero-padded.
func Format(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d", seconds)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
