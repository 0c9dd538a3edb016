// Package cli implements the interactive failboard shell.
//
// The shell has two views. On the login view only help, login and exit are
// accepted. On the dashboard view the user lists, filters, creates and
// updates failure records and browses users. The App is also the navigator
// the HTTP client calls when the session expires: it drops the board and
// returns to the login view.
package cli
