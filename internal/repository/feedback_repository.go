package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lingopulse/insight-server/internal/model"
	"github.com/lingopulse/insight-server/internal/repository/models"
)

// FeedbackRepository is the append-only tabular store: one row per completed
// response, read back in full on every aggregation.
type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// sectionColumns returns the per-section column names in survey order.
func sectionColumns() []string {
	var cols []string
	for _, name := range model.SectionNames {
		for q := 1; q <= model.SectionQuestions; q++ {
			cols = append(cols, fmt.Sprintf("%s_q%d", name, q))
		}
		cols = append(cols, string(name)+"_comment", string(name)+"_submitted")
	}
	return cols
}

// EnsureSchema creates the two response tables if they do not exist. The
// store is append-only; no migrations beyond table creation.
func (s *FeedbackRepository) EnsureSchema(ctx context.Context) error {
	const legacy = `
		CREATE TABLE IF NOT EXISTS responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			submitted_at TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			campus TEXT NOT NULL DEFAULT '',
			teacher TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			lessons_rating TEXT NOT NULL DEFAULT '',
			lessons_comment TEXT NOT NULL DEFAULT '',
			teacher_rating TEXT NOT NULL DEFAULT '',
			teacher_comment TEXT NOT NULL DEFAULT '',
			working_well TEXT NOT NULL DEFAULT '',
			improve TEXT NOT NULL DEFAULT '',
			other TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := s.db.ExecContext(ctx, legacy); err != nil {
		return fmt.Errorf("create responses table: %w", err)
	}

	var b strings.Builder
	b.WriteString(`CREATE TABLE IF NOT EXISTS sectioned_responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			response_id TEXT NOT NULL,
			submitted_at TEXT NOT NULL,
			final_comment TEXT NOT NULL DEFAULT ''`)
	for _, col := range sectionColumns() {
		if strings.HasSuffix(col, "_submitted") {
			b.WriteString(",\n\t\t\t" + col + " INTEGER NOT NULL DEFAULT 0")
		} else {
			b.WriteString(",\n\t\t\t" + col + " TEXT NOT NULL DEFAULT ''")
		}
	}
	b.WriteString("\n\t\t)")
	if _, err := s.db.ExecContext(ctx, b.String()); err != nil {
		return fmt.Errorf("create sectioned_responses table: %w", err)
	}
	return nil
}

// AppendResponse writes one legacy response row. Absent ratings are stored as
// the empty string, never as zero.
func (s *FeedbackRepository) AppendResponse(ctx context.Context, rec model.ResponseRecord) error {
	const query = `
		INSERT INTO responses (
			submitted_at, language, campus, teacher, duration,
			lessons_rating, lessons_comment, teacher_rating, teacher_comment,
			working_well, improve, other
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.Timestamp.Format(time.RFC3339),
		rec.Language,
		string(rec.Campus),
		rec.Teacher,
		string(rec.Duration),
		model.RatingString(rec.LessonsRating),
		rec.LessonsComment,
		model.RatingString(rec.TeacherRating),
		rec.TeacherComment,
		rec.WorkingWell,
		rec.Improve,
		rec.Other,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// ListResponses reads the full legacy table in insertion order.
func (s *FeedbackRepository) ListResponses(ctx context.Context) ([]model.ResponseRecord, error) {
	const query = `
		SELECT id, submitted_at, language, campus, teacher, duration,
			lessons_rating, lessons_comment, teacher_rating, teacher_comment,
			working_well, improve, other
		FROM responses
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListResponses: %w", err)
	}
	defer rows.Close()

	var out []model.ResponseRecord
	for rows.Next() {
		var r models.ResponseRow
		if err := rows.Scan(&r.ID, &r.SubmittedAt, &r.Language, &r.Campus, &r.Teacher, &r.Duration,
			&r.LessonsRating, &r.LessonsComment, &r.TeacherRating, &r.TeacherComment,
			&r.WorkingWell, &r.Improve, &r.Other); err != nil {
			return nil, fmt.Errorf("scan ListResponses row: %w", err)
		}
		out = append(out, rowToRecord(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListResponses: %w", err)
	}
	return out, nil
}

// AppendSectioned writes one sectioned response row.
func (s *FeedbackRepository) AppendSectioned(ctx context.Context, rec model.SectionedResponseRecord) error {
	cols := append([]string{"response_id", "submitted_at", "final_comment"}, sectionColumns()...)
	args := []any{rec.ID, rec.SubmittedAt.Format(time.RFC3339), rec.FinalComment}
	for _, name := range model.SectionNames {
		section := rec.Sections[name]
		for _, score := range section.Scores {
			args = append(args, model.RatingString(score))
		}
		args = append(args, section.Comment, boolToInt(section.Submitted))
	}

	query := fmt.Sprintf("INSERT INTO sectioned_responses (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sectioned response: %w", err)
	}
	return nil
}

// ListSectioned reads the full sectioned table in insertion order.
func (s *FeedbackRepository) ListSectioned(ctx context.Context) ([]model.SectionedResponseRecord, error) {
	cols := append([]string{"response_id", "submitted_at", "final_comment"}, sectionColumns()...)
	query := fmt.Sprintf("SELECT %s FROM sectioned_responses ORDER BY id", strings.Join(cols, ", "))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListSectioned: %w", err)
	}
	defer rows.Close()

	var out []model.SectionedResponseRecord
	for rows.Next() {
		var (
			responseID   string
			submittedAt  string
			finalComment string
		)
		scores := make([]string, len(model.SectionNames)*model.SectionQuestions)
		comments := make([]string, len(model.SectionNames))
		submitted := make([]int, len(model.SectionNames))

		dest := []any{&responseID, &submittedAt, &finalComment}
		for i := range model.SectionNames {
			for q := 0; q < model.SectionQuestions; q++ {
				dest = append(dest, &scores[i*model.SectionQuestions+q])
			}
			dest = append(dest, &comments[i], &submitted[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan ListSectioned row: %w", err)
		}

		rec := model.SectionedResponseRecord{
			ID:           responseID,
			FinalComment: finalComment,
			Sections:     make(map[model.SectionName]model.Section, len(model.SectionNames)),
		}
		if ts, err := time.Parse(time.RFC3339, submittedAt); err == nil {
			rec.SubmittedAt = ts
		}
		for i, name := range model.SectionNames {
			var section model.Section
			for q := 0; q < model.SectionQuestions; q++ {
				section.Scores[q] = model.ParseRating(scores[i*model.SectionQuestions+q], 3)
			}
			section.Comment = comments[i]
			section.Submitted = submitted[i] != 0
			rec.Sections[name] = section
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListSectioned: %w", err)
	}
	return out, nil
}

func rowToRecord(r models.ResponseRow) model.ResponseRecord {
	rec := model.ResponseRecord{
		Language:       r.Language,
		Campus:         model.Campus(r.Campus),
		Teacher:        r.Teacher,
		Duration:       model.Duration(r.Duration),
		LessonsRating:  model.ParseRating(r.LessonsRating, 5),
		LessonsComment: r.LessonsComment,
		TeacherRating:  model.ParseRating(r.TeacherRating, 5),
		TeacherComment: r.TeacherComment,
		WorkingWell:    r.WorkingWell,
		Improve:        r.Improve,
		Other:          r.Other,
	}
	if ts, err := time.Parse(time.RFC3339, r.SubmittedAt); err == nil {
		rec.Timestamp = ts
	}
	return rec
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
