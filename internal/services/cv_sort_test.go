package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studyia/career/internal/dtos"
)

func TestParseCVDate(t *testing.T) {
	for _, s := range []string{"2021-03", "03/2021", "Mar 2021", "March 2021", "2021-03-01"} {
		d := parseCVDate(s)
		assert.True(t, d.ok, s)
		assert.Equal(t, 2021, d.t.Year(), s)
	}
	assert.True(t, parseCVDate("Present").ongoing)
	assert.True(t, parseCVDate(" en cours ").ongoing)
	assert.False(t, parseCVDate("someday").ok)
	assert.False(t, parseCVDate("").ok)
}

func TestSortSections_Experiences(t *testing.T) {
	sec := dtos.CVSections{
		Experiences: []dtos.Experience{
			{Role: "intern", StartDate: "2015-06", EndDate: "2015-09"},
			{Role: "undated-1"},
			{Role: "current", StartDate: "2022-01", EndDate: "Present"},
			{Role: "dev", StartDate: "2018", EndDate: "2021-12"},
			{Role: "undated-2", EndDate: "whenever"},
			{Role: "older-current", StartDate: "2019-01", EndDate: "current"},
			{Role: "no-end", StartDate: "2016-02"},
		},
	}

	SortSections(&sec)

	var roles []string
	for _, e := range sec.Experiences {
		roles = append(roles, e.Role)
	}
	assert.Equal(t, []string{"current", "older-current", "dev", "no-end", "intern", "undated-1", "undated-2"}, roles)
}

func TestSortSections_Education(t *testing.T) {
	sec := dtos.CVSections{
		Education: []dtos.Education{
			{Degree: "BSc", StartDate: "2012", EndDate: "2015"},
			{Degree: "MSc", StartDate: "2015", EndDate: "2017"},
		},
	}
	SortSections(&sec)
	assert.Equal(t, "MSc", sec.Education[0].Degree)
}
