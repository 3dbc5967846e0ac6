package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"dogslife-quiz/internal/catalog"
	"dogslife-quiz/internal/domain"
)

// Filter narrows the admin question list.
type Filter struct {
	Category string
	Search   string
}

func (f Filter) match(q domain.Question) bool {
	if f.Category != "" && q.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(q.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// ImportReport summarizes a CSV import.
type ImportReport struct {
	Imported int                `json:"imported"`
	Skipped  []catalog.RowError `json:"skipped"`
}

// AdminService manages the question bank.
type AdminService struct {
	questions QuestionRepository
	aliases   map[string]string
	now       func() time.Time
}

func NewAdminService(questions QuestionRepository, categoryAliases map[string]string) *AdminService {
	return &AdminService{questions: questions, aliases: categoryAliases, now: time.Now}
}

func (s *AdminService) List(ctx context.Context, f Filter) ([]domain.Question, error) {
	all, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	out := make([]domain.Question, 0, len(all))
	for _, q := range all {
		if f.match(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Save validates and upserts a question. Nothing reaches the store when validation fails.
func (s *AdminService) Save(ctx context.Context, q domain.Question) (domain.Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	q.Category = strings.TrimSpace(q.Category)
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	saved, err := s.questions.Upsert(ctx, q)
	if err != nil {
		return domain.Question{}, persistenceError(err)
	}
	return saved, nil
}

func (s *AdminService) Delete(ctx context.Context, id int64) error {
	if err := s.questions.DeleteByID(ctx, id); err != nil {
		return persistenceError(err)
	}
	return nil
}

// Import parses CSV rows, skips the invalid ones and bulk-inserts the rest.
func (s *AdminService) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	rows, err := catalog.ReadRows(r)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Skipped: []catalog.RowError{}}
	valid := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.ToQuestion(s.aliases)
		if err != nil {
			var rowErr catalog.RowError
			if errors.As(err, &rowErr) {
				report.Skipped = append(report.Skipped, rowErr)
			}
			continue
		}
		valid = append(valid, q)
	}

	if len(valid) == 0 {
		if len(report.Skipped) > 0 {
			return report, fmt.Errorf("%w: all rows were skipped due to errors", domain.ErrValidation)
		}
		return report, fmt.Errorf("%w: no valid questions found", domain.ErrValidation)
	}

	if err := s.questions.InsertMany(ctx, valid); err != nil {
		return report, persistenceError(err)
	}
	report.Imported = len(valid)
	log.Printf("imported %d questions (%d rows skipped)", report.Imported, len(report.Skipped))
	return report, nil
}

// ExportCSV writes the questions of category (all when empty) in the interchange format.
func (s *AdminService) ExportCSV(ctx context.Context, w io.Writer, category string) error {
	questions, err := s.exportable(ctx, category)
	if err != nil {
		return err
	}
	return catalog.WriteCSV(w, questions)
}

// ExportPDF renders the printable catalog of category (all when empty).
func (s *AdminService) ExportPDF(ctx context.Context, w io.Writer, category string) error {
	questions, err := s.exportable(ctx, category)
	if err != nil {
		return err
	}
	return catalog.WritePDF(w, questions, catalog.PDFOptions{Category: category, Now: s.now()})
}

func (s *AdminService) exportable(ctx context.Context, category string) ([]domain.Question, error) {
	questions, err := s.List(ctx, Filter{Category: category})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrNothingToExport
	}
	return questions, nil
}

func persistenceError(err error) error {
	if errors.Is(err, domain.ErrQuestionNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
