package cli

import "context"

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials, signs in and opens the dashboard.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "username", userName, "error", err)
		return err
	}

	a.enterDashboard(resp.User.Username)
	name := resp.User.Name
	if name == "" {
		name = resp.User.Username
	}
	a.printf("Welcome, %s!\n", name)

	return a.showList(ctx, true)
}

// Logout forgets the session and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.leaveDashboard()
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.println("Nobody is signed in.")
		return nil
	}
	return writeUser(a.out, *u)
}
