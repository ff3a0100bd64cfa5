package model

import "time"

// SectionName is one of the five fixed sections of the long survey.
type SectionName string

const (
	SectionEnvironment SectionName = "environment"
	SectionExperience  SectionName = "experience"
	SectionTeaching    SectionName = "teaching"
	SectionSupport     SectionName = "support"
	SectionManagement  SectionName = "management"
)

// SectionNames lists the sections in survey order.
var SectionNames = []SectionName{
	SectionEnvironment,
	SectionExperience,
	SectionTeaching,
	SectionSupport,
	SectionManagement,
}

// SectionQuestions is the fixed number of scored sub-questions per section.
const SectionQuestions = 4

// Section holds one section's four sub-scores on the 0-3 ordinal scale plus
// its free-text comment. A nil score is an unanswered sub-question.
type Section struct {
	Scores    [SectionQuestions]*int `json:"scores"`
	Comment   string                 `json:"comment"`
	Submitted bool                   `json:"submitted"`
}

// Average is the mean of the section's present sub-scores.
func (s Section) Average() (float64, bool) {
	sum, n := 0, 0
	for _, v := range s.Scores {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// SectionedResponseRecord is one response to the twenty-question sectioned
// survey.
type SectionedResponseRecord struct {
	ID           string                  `json:"id"`
	SubmittedAt  time.Time               `json:"submittedAt"`
	Sections     map[SectionName]Section `json:"sections"`
	FinalComment string                  `json:"finalComment"`
}

// SectionAverage returns the composite average for one section.
func (r SectionedResponseRecord) SectionAverage(name SectionName) (float64, bool) {
	s, ok := r.Sections[name]
	if !ok {
		return 0, false
	}
	return s.Average()
}

// OverallAverage is the mean of the section averages that are present.
func (r SectionedResponseRecord) OverallAverage() (float64, bool) {
	sum, n := 0.0, 0
	for _, name := range SectionNames {
		avg, ok := r.SectionAverage(name)
		if !ok {
			continue
		}
		sum += avg
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Complete reports whether every section has been submitted. Partial records
// still contribute whatever averages they have.
func (r SectionedResponseRecord) Complete() bool {
	for _, name := range SectionNames {
		if !r.Sections[name].Submitted {
			return false
		}
	}
	return true
}
