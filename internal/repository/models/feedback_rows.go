package models

// ResponseRow is one raw row of the legacy responses table. Rating columns
// hold the numeric string form or the empty string for absent, mirroring the
// spreadsheet the table replaced.
type ResponseRow struct {
	ID             int64
	SubmittedAt    string
	Language       string
	Campus         string
	Teacher        string
	Duration       string
	LessonsRating  string
	LessonsComment string
	TeacherRating  string
	TeacherComment string
	WorkingWell    string
	Improve        string
	Other          string
}
