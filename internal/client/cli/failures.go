package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marmota/failboard/internal/client/board"
	"github.com/marmota/failboard/internal/client/models"
)

// List prints the filtered view, loading it first when reload is set or
// nothing has been loaded yet.
func (a *App) List(ctx context.Context, reload bool) error {
	return a.showList(ctx, reload)
}

func (a *App) showList(ctx context.Context, reload bool) error {
	if reload || a.board.View().State == board.Loading {
		a.println("Loading failures...")
		// A load error leaves the board in Error, which render reports.
		// Anything else (an expired session) goes back to the caller.
		if err := a.board.Load(ctx); err != nil && a.board.View().State != board.Error {
			return err
		}
	}
	a.render(a.board.View())
	return nil
}

func (a *App) render(v board.View) {
	switch v.State {
	case board.Loading:
		a.println("Loading failures...")
	case board.Error:
		a.printf("Could not load failures: %s\n", describe(v.Err))
		a.println("Type 'retry' to try again.")
	case board.Ready:
		writeCriteria(a.out, v.Criteria, len(v.Filtered), len(v.Records))
		if len(v.Filtered) == 0 {
			a.println("No failures found.")
			return
		}
		writeFailures(a.out, v.Filtered, a.board.Location())
	}
}

func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("filter <Mecânica|Elétrica|Estrutural|Software|Outro|All>")
	}
	cat, err := parseCategoryFilter(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := a.board.SetCategory(cat); err != nil {
		return err
	}
	return a.showList(ctx, false)
}

func (a *App) Range(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("range <from> <to>, dates as YYYY-MM-DD or - for an open end")
	}
	from, err := board.ParseDay(args[0])
	if err != nil {
		return err
	}
	to, err := board.ParseDay(args[1])
	if err != nil {
		return err
	}
	if err := a.board.SetDateRange(from, to); err != nil {
		return err
	}
	return a.showList(ctx, false)
}

func (a *App) Clear(ctx context.Context) error {
	a.board.ClearCriteria()
	return a.showList(ctx, false)
}

// Add registers a failure. With no arguments it asks for the category and
// the description.
func (a *App) Add(ctx context.Context, args []string) error {
	var (
		catText     string
		description string
	)
	if len(args) >= 2 {
		catText, description = args[0], strings.Join(args[1:], " ")
	} else {
		var err error
		catText, err = getSimpleText(a.reader, "Category ("+categoryChoices()+")", a.out)
		if err != nil {
			return err
		}
		description, err = getSimpleText(a.reader, "Description", a.out)
		if err != nil {
			return err
		}
	}

	cat, ok := models.LookupCategory(catText)
	if !ok {
		return fmt.Errorf("unknown category %q, choose one of %s", catText, categoryChoices())
	}

	f, err := a.board.Add(ctx, cat, description)
	if err != nil {
		if errors.Is(err, board.ErrEmptyDescription) {
			return errors.New("please add a description for the failure")
		}
		return alert("could not add failure", err)
	}

	a.printf("Failure %s registered.\n", f.ID)
	return nil
}

// Status sets the status of a failure: status <id> <status...>.
func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("status <id> <Pendente|Em Andamento|Resolvido>")
	}
	st, err := models.ParseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if err := a.board.UpdateStatus(ctx, args[0], st); err != nil {
		return alert("could not update status", err)
	}
	a.printf("Failure %s is now %s.\n", args[0], statusBadge(st))
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <id>")
	}
	f, err := a.board.Select(args[0])
	if err != nil {
		return err
	}
	writeFailure(a.out, f, a.board.Location())
	return nil
}

func (a *App) Retry(ctx context.Context) error {
	err := a.board.Retry(ctx)
	if errors.Is(err, board.ErrNothingToRetry) {
		return err
	}
	if err != nil && a.board.View().State != board.Error {
		return err
	}
	a.render(a.board.View())
	return nil
}

func parseCategoryFilter(s string) (models.Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "todos", "todas", "*":
		return board.All, nil
	}
	cat, ok := models.LookupCategory(s)
	if !ok {
		return "", fmt.Errorf("unknown category %q, choose one of %s or All", s, categoryChoices())
	}
	return cat, nil
}

func categoryChoices() string {
	cats := models.Categories()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}
