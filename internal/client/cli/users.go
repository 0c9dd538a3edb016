package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Users lists accounts. Arguments of the form key=value become query
// filters.
func (a *App) Users(ctx context.Context, args []string) error {
	filter := url.Values{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return usageError("users [key=value...]")
		}
		filter.Add(k, v)
	}

	us, err := a.userService.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(us) == 0 {
		a.println("No users found.")
		return nil
	}
	writeUsers(a.out, us)
	return nil
}

func (a *App) User(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("user <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	u, err := a.userService.Get(ctx, id)
	if err != nil {
		return err
	}
	return writeUser(a.out, *u)
}
