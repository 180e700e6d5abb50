// Package extractor turns free-form task text into a deadline candidate using
// a fixed list of date patterns and a keyword subject table.
package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"focus-campus-bot/internal/models"
)

// Confidence is reported for every pattern match.
const Confidence = 0.7

const titleWords = 7

// Deadline is an extracted, not yet confirmed, deadline.
type Deadline struct {
	Title      string
	Due        time.Time
	Subject    string
	Confidence float64
}

type resolver func(m []string, now time.Time) (time.Time, bool)

type pattern struct {
	re      *regexp.Regexp
	resolve resolver
}

// patterns are tried in order; the first one found anywhere in the text wins:
// DD.MM.YYYY, "D <месяца>", "через N дней", "до DD.MM".
var patterns = []pattern{
	{regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{2,4})`), resolveNumeric},
	{regexp.MustCompile(`(\d{1,2})\s+(января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)`), resolveNamedMonth},
	{regexp.MustCompile(`через\s+(\d+)\s+(день|дня|дней)`), resolveDaysAfter},
	{regexp.MustCompile(`до\s+(\d{1,2})[./](\d{1,2})`), resolveUntil},
}

var months = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

var subjects = []struct {
	name     string
	keywords []string
}{
	{"математика", []string{"мат", "алгебр", "геометр", "математик"}},
	{"программирование", []string{"прог", "код", "алгоритм", "python", "java"}},
	{"физика", []string{"физик", "механи", "оптик", "термодинамик"}},
	{"английский", []string{"англ", "english", "language", "speaking"}},
}

// Extract returns a candidate when text contains a recognizable date.
// A pattern that matches but yields an impossible calendar date ends the
// search with no candidate.
func Extract(text string, now time.Time) (Deadline, bool) {
	// fold unicode spaces (NBSP in "5 марта") to one ASCII space for \s
	lower := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		due, ok := p.resolve(m, now)
		if !ok {
			return Deadline{}, false
		}
		return Deadline{
			Title:      Title(text),
			Due:        due,
			Subject:    GuessSubject(text),
			Confidence: Confidence,
		}, true
	}

	return Deadline{}, false
}

// Title is the first seven whitespace separated words of text.
func Title(text string) string {
	words := strings.Fields(text)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.Join(words, " ")
}

// GuessSubject returns the first subject whose keyword occurs in text.
func GuessSubject(text string) string {
	lower := strings.ToLower(text)
	for _, s := range subjects {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.name
			}
		}
	}
	return models.DefaultSubject
}

// ---------- resolvers --------------------------------------------------------

func resolveNumeric(m []string, now time.Time) (time.Time, bool) {
	day, month, year, err := atoi3(m[1], m[2], m[3])
	if err != nil {
		return time.Time{}, false
	}
	return date(normalizeYear(year), month, day, now.Location())
}

func resolveNamedMonth(m []string, now time.Time) (time.Time, bool) {
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month := months[m[2]]
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return date(year, int(month), day, now.Location())
}

func resolveDaysAfter(m []string, now time.Time) (time.Time, bool) {
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, days), true
}

func resolveUntil(m []string, now time.Time) (time.Time, bool) {
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	return date(now.Year(), month, day, now.Location())
}

func normalizeYear(year int) int {
	if year < 100 {
		return year + 2000
	}
	return year
}

// date builds a midnight timestamp, rejecting dates time.Date would normalize.
func date(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi3(a, b, c string) (int, int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, 0, err
	}
	z, err := strconv.Atoi(c)
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}
