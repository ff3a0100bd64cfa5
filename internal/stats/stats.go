// Package stats computes satisfaction averages, composite scores and
// time-windowed subsets over materialized response records. Absent ratings
// are excluded from every mean, never treated as zero.
package stats

import "github.com/lingopulse/insight-server/internal/model"

// Average is the mean of the present values; ok is false when none are.
func Average(values []*int) (float64, bool) {
	sum, n := 0, 0
	for _, v := range values {
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

// AverageFloat is the mean of a float slice; ok is false when empty.
func AverageFloat(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// CompositeScore is the mean, over records carrying BOTH core ratings, of the
// per-record average of the two. Records missing either rating are wholly
// excluded, not partially counted.
func CompositeScore(records []model.ResponseRecord) (float64, bool) {
	var composites []float64
	for _, r := range records {
		if r.LessonsRating == nil || r.TeacherRating == nil {
			continue
		}
		composites = append(composites, float64(*r.LessonsRating+*r.TeacherRating)/2)
	}
	return AverageFloat(composites)
}

// LessonsAverage is the mean lessons rating over the records that have one.
func LessonsAverage(records []model.ResponseRecord) (float64, bool) {
	ratings := make([]*int, len(records))
	for i, r := range records {
		ratings[i] = r.LessonsRating
	}
	return Average(ratings)
}

// TeacherAverage is the mean teacher rating over the records that have one.
func TeacherAverage(records []model.ResponseRecord) (float64, bool) {
	ratings := make([]*int, len(records))
	for i, r := range records {
		ratings[i] = r.TeacherRating
	}
	return Average(ratings)
}

// SectionedOverall is the mean of the per-record overall averages that are
// present.
func SectionedOverall(records []model.SectionedResponseRecord) (float64, bool) {
	var overalls []float64
	for _, r := range records {
		if avg, ok := r.OverallAverage(); ok {
			overalls = append(overalls, avg)
		}
	}
	return AverageFloat(overalls)
}

// SectionAverage is the mean, across records, of one section's composite
// average; records without that section present are excluded.
func SectionAverage(records []model.SectionedResponseRecord, name model.SectionName) (float64, bool) {
	var averages []float64
	for _, r := range records {
		if avg, ok := r.SectionAverage(name); ok {
			averages = append(averages, avg)
		}
	}
	return AverageFloat(averages)
}
