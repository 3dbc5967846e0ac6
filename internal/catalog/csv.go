package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"dogslife-quiz/internal/domain"
)

// Header is the first line of every exported CSV file.
const Header = "question,question_type,answers,correct_answers,category"

const listSeparator = ";"

// Row is one parsed CSV line before it becomes a Question.
type Row struct {
	Line           int
	Question       string
	QuestionType   string
	Answers        string
	CorrectAnswers string
	Category       string
}

// RowError explains why a row was not imported.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// WriteCSV writes questions in the interchange format. Every field is quoted
// with inner quotes doubled, lists are joined with ';' and rows with '\n'.
func WriteCSV(w io.Writer, questions []domain.Question) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return err
	}
	for _, q := range questions {
		fields := []string{
			quote(q.Text),
			quote(string(q.Type)),
			quote(strings.Join(q.AllAnswers, listSeparator)),
			quote(strings.Join(q.CorrectAnswers, listSeparator)),
			quote(q.Category),
		}
		if _, err := bw.WriteString("\n" + strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ReadRows parses CSV text, skipping the header, blank lines and rows with
// fewer than five fields. Values are trimmed.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows []Row
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if first {
			first = false
			continue
		}
		if len(record) < 5 {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{
			Line:           line,
			Question:       strings.TrimSpace(record[0]),
			QuestionType:   strings.TrimSpace(record[1]),
			Answers:        strings.TrimSpace(record[2]),
			CorrectAnswers: strings.TrimSpace(record[3]),
			Category:       strings.TrimSpace(record[4]),
		})
	}
	return rows, nil
}

// ToQuestion normalizes a row. Category aliases rename legacy tracks.
func (r Row) ToQuestion(aliases map[string]string) (domain.Question, error) {
	qType, ok := domain.ParseQuestionType(r.QuestionType)
	if !ok {
		return domain.Question{}, RowError{Line: r.Line, Reason: fmt.Sprintf("invalid type %q", r.QuestionType)}
	}
	category := r.Category
	if alias, ok := aliases[category]; ok {
		category = alias
	}
	q := domain.Question{
		Text:           r.Question,
		Type:           qType,
		AllAnswers:     splitList(r.Answers),
		CorrectAnswers: splitList(r.CorrectAnswers),
		Category:       category,
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, RowError{Line: r.Line, Reason: err.Error()}
	}
	return q, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
