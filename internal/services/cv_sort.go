package services

import (
	"sort"
	"strings"
	"time"

	"github.com/studyia/career/internal/dtos"
)

var cvDateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"1/2006",
	"01-2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"2006",
}

var ongoingWords = map[string]bool{
	"present":     true,
	"current":     true,
	"now":         true,
	"ongoing":     true,
	"today":       true,
	"aujourd'hui": true,
	"en cours":    true,
	"actuel":      true,
}

// cvDate is a sortable CV date: ongoing sorts after any calendar date.
type cvDate struct {
	t       time.Time
	ongoing bool
	ok      bool
}

func parseCVDate(s string) cvDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return cvDate{}
	}
	if ongoingWords[strings.ToLower(s)] {
		return cvDate{ongoing: true, ok: true}
	}
	for _, layout := range cvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return cvDate{t: t, ok: true}
		}
	}
	return cvDate{}
}

// after reports whether a sorts before b in most-recent-first order.
func (a cvDate) after(b cvDate) bool {
	switch {
	case a.ok != b.ok:
		return a.ok
	case !a.ok:
		return false
	case a.ongoing != b.ongoing:
		return a.ongoing
	default:
		return a.t.After(b.t)
	}
}

func (a cvDate) equal(b cvDate) bool {
	return a.ok == b.ok && a.ongoing == b.ongoing && a.t.Equal(b.t)
}

// mostRecentFirst orders by end date, then start date. An empty end date with a known
// start is treated as the start date. Undated entries keep their order at the end.
func mostRecentFirst(start, end func(i int) string) func(i, j int) bool {
	key := func(i int) (cvDate, cvDate) {
		s, e := parseCVDate(start(i)), parseCVDate(end(i))
		if !e.ok {
			e = s
		}
		return e, s
	}
	return func(i, j int) bool {
		ei, si := key(i)
		ej, sj := key(j)
		if !ei.equal(ej) {
			return ei.after(ej)
		}
		return si.after(sj)
	}
}

// SortSections puts experiences and education in reverse chronological order.
func SortSections(sec *dtos.CVSections) {
	exp := sec.Experiences
	sort.SliceStable(exp, mostRecentFirst(
		func(i int) string { return exp[i].StartDate },
		func(i int) string { return exp[i].EndDate },
	))
	edu := sec.Education
	sort.SliceStable(edu, mostRecentFirst(
		func(i int) string { return edu[i].StartDate },
		func(i int) string { return edu[i].EndDate },
	))
}
