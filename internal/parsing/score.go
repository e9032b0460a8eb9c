package parsing

import (
	"regexp"
	"strconv"
)

// MaxScore is the ceiling applied to parsed scores.
const MaxScore = 100

var scorePattern = regexp.MustCompile(`(?i)\b(\d{1,3})\]?\s*(?:/\s*100|%|out of 100)`)

// ParseScore finds the first "NN/100", "NN%" or "NN out of 100" in text.
// Values above MaxScore are clamped. The second result is false when no
// score is present.
func ParseScore(text string) (int, bool) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return min(n, MaxScore), true
}
