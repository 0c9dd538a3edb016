package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. *App satisfies it; tests
// can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, reload bool) error
	Filter(ctx context.Context, args []string) error
	Range(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Retry(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	User(ctx context.Context, args []string) error
}

const (
	loginHelp     = "Available commands: login, exit"
	dashboardHelp = `Available commands:
  (l)ist                   show the failure list
  reload                   fetch the list again
  filter <category|All>    filter by category (Mecânica, Elétrica, Estrutural, Software, Outro)
  range <from> <to>        filter by creation day, YYYY-MM-DD or - for an open end
  clear                    remove all filters
  add [category text...]   register a failure
  status <id> <status>     set status (Pendente, Em Andamento, Resolvido)
  show <id>                show a failure in detail
  retry                    retry a failed load
  users [key=value...]     list users
  user <id>                show a user
  whoami                   show the signed-in user
  logout, exit`
)

// runREPL reads a line, parses the first token as the command and
// dispatches to a. Handler errors are reported back to the user. The loop
// exits on EOF, a canceled context, or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "fb %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			fmt.Fprintln(w, "Error:", describe(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	if cmd == "help" {
		if a.isLoggedIn() {
			fmt.Fprintln(w, dashboardHelp)
		} else {
			fmt.Fprintln(w, loginHelp)
		}
		return nil
	}

	if !a.isLoggedIn() {
		if cmd == "login" {
			return a.Login(ctx)
		}
		fmt.Fprintln(w, "Please log in first (type 'login').")
		return nil
	}

	switch cmd {
	case "login":
		fmt.Fprintln(w, "Already logged in. Use 'logout' first.")
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "l", "list":
		return a.List(ctx, false)
	case "reload":
		return a.List(ctx, true)
	case "filter":
		return a.Filter(ctx, args)
	case "range":
		return a.Range(ctx, args)
	case "clear":
		return a.Clear(ctx)
	case "add":
		return a.Add(ctx, args)
	case "status":
		return a.Status(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "retry":
		return a.Retry(ctx)
	case "users":
		return a.Users(ctx, args)
	case "user":
		return a.User(ctx, args)
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
	}
	return nil
}
