package script

import (
	"fmt"
	"math"
	"strings"
)

// WordsPerMinute is the assumed speaking rate of the narrator.
const WordsPerMinute = 140

// Duration is an estimated spoken runtime.
type Duration struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func (d Duration) String() string {
	return fmt.Sprintf("%d:%02d", d.Minutes, d.Seconds)
}

// WordCount counts whitespace-delimited words across all narrations.
func WordCount(scenes []Scene) int {
	n := 0
	for _, s := range scenes {
		n += len(strings.Fields(s.Narration))
	}
	return n
}

// Estimate returns the spoken runtime of scenes at WordsPerMinute.
// An empty script has no estimate.
func Estimate(scenes []Scene) (Duration, bool) {
	if len(scenes) == 0 {
		return Duration{}, false
	}
	total := int(math.Round(float64(WordCount(scenes)) / WordsPerMinute * 60))
	return Duration{Minutes: total / 60, Seconds: total % 60}, true
}
