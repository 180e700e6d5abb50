package scheduler

import "time"

// Band is a half-open range (Low, High] of time left before a deadline.
type Band struct {
	Key   string
	Label string
	Low   time.Duration
	High  time.Duration
}

func (b Band) Contains(left time.Duration) bool {
	return left > b.Low && left <= b.High
}

// Bands are checked in order, the first match wins.
var Bands = []Band{
	{Key: "24h", Label: "24 часа", Low: 23 * time.Hour, High: 24 * time.Hour},
	{Key: "3h", Label: "3 часа", Low: 150 * time.Minute, High: 3 * time.Hour},
	{Key: "30m", Label: "30 минут", Low: 25 * time.Minute, High: 30 * time.Minute},
}

// BandFor returns the band holding left.
func BandFor(left time.Duration) (Band, bool) {
	for _, b := range Bands {
		if b.Contains(left) {
			return b, true
		}
	}
	return Band{}, false
}
