package model

import (
	"strconv"
	"strings"
	"time"
)

// Campus identifies one of the school's locations.
type Campus string

const (
	CampusDubai  Campus = "Dubai"
	CampusLondon Campus = "London"
)

// Duration is the student's length of stay, bucketed.
type Duration string

const (
	DurationUnderOneMonth Duration = "under_1_month"
	DurationOneToThree    Duration = "1_3_months"
	DurationThreeToSix    Duration = "3_6_months"
	DurationSixToTwelve   Duration = "6_12_months"
	DurationOverTwelve    Duration = "over_1_year"
)

// ResponseRecord is one completed response to the legacy six-question survey.
// Rating fields are nil when the student never answered them; nil ratings are
// excluded from every average, never counted as zero.
type ResponseRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	Language       string    `json:"language"`
	Campus         Campus    `json:"campus"`
	Teacher        string    `json:"teacher"`
	Duration       Duration  `json:"duration"`
	LessonsRating  *int      `json:"lessonsRating"`
	LessonsComment string    `json:"lessonsComment"`
	TeacherRating  *int      `json:"teacherRating"`
	TeacherComment string    `json:"teacherComment"`
	WorkingWell    string    `json:"workingWell"`
	Improve        string    `json:"improve"`
	Other          string    `json:"other"`
}

// ParseRating converts the stored string form of a rating into an optional
// value. The tabular store writes ratings as their numeric string or the empty
// string for absent; anything non-numeric or outside [0,max] is treated as
// absent as well.
func ParseRating(s string, max int) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	if v < 0 || v > max {
		return nil
	}
	return &v
}

// RatingString is the inverse of ParseRating for the store's wire form.
func RatingString(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
