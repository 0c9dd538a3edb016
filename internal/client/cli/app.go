package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/marmota/failboard/internal/client/board"
	"github.com/marmota/failboard/internal/client/services"
	"github.com/marmota/failboard/internal/logging"
)

type View string

const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

type Option func(*App)

func WithInput(r io.Reader) Option {
	return func(a *App) { a.reader = bufio.NewReader(r) }
}

func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.log = l }
}

type App struct {
	authService services.AuthService
	userService services.UserService
	board       *board.Board
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.Mutex
	view     View
	userName string
}

func NewApp(as services.AuthService, us services.UserService, b *board.Board, opts ...Option) *App {
	a := &App{
		authService: as,
		userService: us,
		board:       b,
		log:         logging.Discard(),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		view:        ViewLogin,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// OnLoginView reports whether the login view is showing.
func (a *App) OnLoginView() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view == ViewLogin
}

// RedirectToLogin drops everything the dashboard showed and switches to the
// login view.
func (a *App) RedirectToLogin() {
	a.mu.Lock()
	a.view = ViewLogin
	a.userName = ""
	a.mu.Unlock()

	a.board.Reset()
	a.println("Your session has expired. Please log in again.")
}

func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) isLoggedIn() bool {
	return a.View() == ViewDashboard
}

func (a *App) enterDashboard(userName string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = ViewDashboard
	a.userName = userName
}

func (a *App) leaveDashboard() {
	a.mu.Lock()
	a.view = ViewLogin
	a.userName = ""
	a.mu.Unlock()
	a.board.Reset()
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.userName == "" {
		return fmt.Sprintf("(%s)", a.view)
	}
	return fmt.Sprintf("(%s %s)", a.userName, a.view)
}

// Run restores a stored session if there is one, then serves commands until
// the input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	a.println("failboard (type 'help' for commands)")

	ok, err := a.authService.LoggedIn(ctx)
	if err != nil {
		a.log.Warn(ctx, "read stored session failed", "error", err)
	}
	if ok {
		a.resume(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) resume(ctx context.Context) {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "read stored user failed", "error", err)
	}
	name := ""
	if u != nil {
		name = u.Username
	}
	a.enterDashboard(name)
	a.println("Resuming session.")
	_ = a.showList(ctx, true)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
