package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/auth"
	"dogslife-quiz/internal/config"
	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/infra/memory"
	"dogslife-quiz/internal/quiz"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs the quiz in the terminal against the configured question store.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Take a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			b, err := openQuestionStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			p := &player{
				quiz:  app.NewQuizService(memory.NewSessionStore(), b.questions, quizOptions(cfg)...),
				admin: app.NewAdminService(b.questions, cfg.Quiz.CategoryAliases),
				auth:  auth.NewService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, time.Hour),
				in:    bufio.NewScanner(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
				nav:   app.NewNavigator(),
			}
			return p.run(cmd.Context())
		},
	}
}

var errQuit = errors.New("quit")

// player drives the view router from line-based terminal input.
type player struct {
	quiz  *app.QuizService
	admin *app.AdminService
	auth  *auth.Service
	in    *bufio.Scanner
	out   io.Writer

	nav       app.Navigator
	sessionID string
}

func (p *player) run(ctx context.Context) error {
	for {
		var err error
		switch p.nav.View {
		case app.ViewStart:
			err = p.start()
		case app.ViewAdminLogin:
			err = p.adminLogin()
		case app.ViewAdminDashboard:
			err = p.dashboard(ctx)
		case app.ViewSelection:
			err = p.selection(ctx)
		case app.ViewGame:
			err = p.game(ctx)
		case app.ViewResult:
			err = p.result(ctx)
		}
		if errors.Is(err, errQuit) {
			if p.sessionID != "" {
				_ = p.quiz.Abandon(ctx, p.sessionID)
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (p *player) prompt(label string) (string, error) {
	fmt.Fprint(p.out, label+"> ")
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	line := strings.TrimSpace(p.in.Text())
	if line == "q" {
		return "", errQuit
	}
	return line, nil
}

func (p *player) start() error {
	fmt.Fprintln(p.out, "Dog´s Life Academy")
	fmt.Fprintln(p.out, "  1) Teilnehmer")
	fmt.Fprintln(p.out, "  2) Admin")
	choice, err := p.prompt("")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		p.nav, _ = p.nav.ChooseParticipant()
	case "2":
		p.nav, _ = p.nav.ChooseAdmin()
	}
	return nil
}

func (p *player) adminLogin() error {
	password, err := p.prompt("Passwort")
	if err != nil {
		return err
	}
	if _, err := p.auth.Login(password); err != nil {
		fmt.Fprintln(p.out, "Falsches Passwort")
		p.nav = p.nav.Home()
		return nil
	}
	p.nav, _ = p.nav.AdminAuthenticated()
	return nil
}

func (p *player) dashboard(ctx context.Context) error {
	questions, err := p.admin.List(ctx, app.Filter{})
	if err != nil {
		fmt.Fprintf(p.out, "Fehler beim Laden: %v\n", err)
	} else {
		counts := map[string]int{}
		for _, q := range questions {
			counts[q.Category]++
		}
		fmt.Fprintf(p.out, "Fragen gesamt: %d\n", len(questions))
		for _, category := range p.quiz.Offer().Categories {
			fmt.Fprintf(p.out, "  %s: %d\n", category, counts[category])
		}
	}
	if _, err := p.prompt("Enter für Startseite"); err != nil {
		return err
	}
	p.nav = p.nav.Home()
	return nil
}

func (p *player) selection(ctx context.Context) error {
	offer := p.quiz.Offer()
	category, ok, err := p.choose("Kategorie", offer.Categories)
	if err != nil || !ok {
		return err
	}
	counts := make([]string, len(offer.Counts))
	for i, c := range offer.Counts {
		counts[i] = strconv.Itoa(c)
		if c == offer.TimedCount && offer.TimeLimit > 0 {
			counts[i] += fmt.Sprintf(" (%d Min.)", offer.TimeLimit/60)
		}
	}
	_, idx, err := p.chooseIndex("Anzahl Fragen", counts)
	if err != nil || idx < 0 {
		return err
	}

	snap, err := p.quiz.StartSession(ctx, domain.QuizConfig{Category: category, Count: offer.Counts[idx]})
	switch {
	case errors.Is(err, domain.ErrEmptyCategory):
		fmt.Fprintln(p.out, "Keine Fragen in dieser Kategorie gefunden.")
		return nil
	case err != nil:
		fmt.Fprintf(p.out, "Fehler beim Laden der Fragen: %v\n", err)
		return nil
	}
	p.sessionID = snap.SessionID
	p.nav, _ = p.nav.StartGame()
	return nil
}

func (p *player) choose(label string, options []string) (string, bool, error) {
	value, idx, err := p.chooseIndex(label, options)
	return value, idx >= 0, err
}

func (p *player) chooseIndex(label string, options []string) (string, int, error) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	line, err := p.prompt(label)
	if err != nil {
		return "", -1, err
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil || n < 1 || n > len(options) {
		return "", -1, nil
	}
	return options[n-1], n - 1, nil
}

func (p *player) game(ctx context.Context) error {
	snap, err := p.quiz.Get(ctx, p.sessionID)
	if err != nil {
		return err
	}
	st := snap.State
	if st.Phase == quiz.PhaseFinished {
		if st.ForceFinished {
			fmt.Fprintln(p.out, "Die Zeit ist abgelaufen!")
		}
		p.nav, _ = p.nav.FinishGame()
		return nil
	}

	if st.Phase == quiz.PhaseConfirmingFinish {
		line, err := p.prompt("Quiz wirklich beenden? (j/n)")
		if err != nil {
			return err
		}
		ev := quiz.EventCancelFinish
		if line == "j" {
			ev = quiz.EventConfirmFinish
		}
		_, _, err = p.quiz.Dispatch(ctx, p.sessionID, quiz.Event{Kind: ev})
		return err
	}

	q, _ := st.Current()
	fmt.Fprintf(p.out, "\nFrage %d von %d", st.CurrentIndex+1, len(st.Questions))
	if st.Timed() {
		fmt.Fprintf(p.out, "  [%02d:%02d]", st.TimeRemaining/60, st.TimeRemaining%60)
	}
	fmt.Fprintf(p.out, "\n%s\n", q.Text)
	if q.Type == domain.MultipleChoice {
		fmt.Fprintln(p.out, "(Mehrfachauswahl möglich)")
	}
	selected := map[string]bool{}
	for _, s := range st.Answers.Selected(q.ID) {
		selected[s] = true
	}
	for i, option := range q.AllAnswers {
		mark := " "
		if selected[option] {
			mark = "x"
		}
		fmt.Fprintf(p.out, "  [%s] %d) %s\n", mark, i+1, option)
	}

	line, err := p.prompt("Nummer, n=weiter, p=zurück, f=beenden")
	if err != nil {
		return err
	}
	var ev quiz.Event
	switch line {
	case "n":
		ev = quiz.Event{Kind: quiz.EventNext}
	case "p":
		ev = quiz.Event{Kind: quiz.EventPrevious}
	case "f":
		ev = quiz.Event{Kind: quiz.EventRequestFinish}
	default:
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(q.AllAnswers) {
			return nil
		}
		ev = quiz.Event{Kind: quiz.EventSelect, QuestionID: q.ID, Option: q.AllAnswers[n-1]}
	}
	_, accepted, err := p.quiz.Dispatch(ctx, p.sessionID, ev)
	if err != nil {
		return err
	}
	if !accepted && ev.Kind == quiz.EventRequestFinish {
		fmt.Fprintln(p.out, "Bitte beantworte alle Fragen und gehe zur letzten Frage.")
	}
	return nil
}

func (p *player) result(ctx context.Context) error {
	result, err := p.quiz.Result(ctx, p.sessionID)
	if err != nil {
		return err
	}
	verdict := "Leider nicht bestanden"
	if result.Passed {
		verdict = "Bestanden!"
	}
	fmt.Fprintf(p.out, "\n%s %d von %d richtig (%d%%)\n", verdict, result.CorrectCount, result.TotalCount, result.Percentage)
	for i, qr := range result.Questions {
		mark := "✗"
		if qr.IsCorrect {
			mark = "✓"
		}
		fmt.Fprintf(p.out, "%s %d. %s\n", mark, i+1, qr.Question.Text)
		for _, o := range qr.Options {
			if o.Status != quiz.OptionNeutral {
				fmt.Fprintf(p.out, "     %s (%s)\n", o.Text, o.Status)
			}
		}
	}

	line, err := p.prompt("r=neues Quiz, h=Startseite")
	if err != nil {
		return err
	}
	_ = p.quiz.Abandon(ctx, p.sessionID)
	p.sessionID = ""
	if line == "r" {
		p.nav, _ = p.nav.Restart()
	} else {
		p.nav = p.nav.Home()
	}
	return nil
}
