package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/marmota/failboard/internal/client/board"
	"github.com/marmota/failboard/internal/client/models"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.Bold)

	categoryColors = map[models.Category]*color.Color{
		models.CategoryMechanical: color.New(color.FgBlue),
		models.CategoryElectrical: color.New(color.FgYellow),
		models.CategoryStructural: color.New(color.FgGreen),
		models.CategorySoftware:   color.New(color.FgMagenta),
	}
	statusColors = map[models.Status]*color.Color{
		models.StatusResolved:   color.New(color.FgGreen),
		models.StatusInProgress: color.New(color.FgYellow),
	}
	defaultBadge = color.New(color.FgWhite)
)

func categoryBadge(c models.Category) string {
	if col, ok := categoryColors[c]; ok {
		return col.Sprint(c.String())
	}
	return defaultBadge.Sprint(c.String())
}

func statusBadge(s models.Status) string {
	if col, ok := statusColors[s]; ok {
		return col.Sprint(s.String())
	}
	return defaultBadge.Sprint(s.String())
}

func writeCriteria(w io.Writer, c board.Criteria, shown, total int) {
	if !c.Active() {
		fmt.Fprintf(w, "%d failure(s)\n", total)
		return
	}

	var parts []string
	if c.Category != board.All {
		parts = append(parts, "category "+categoryBadge(c.Category))
	}
	switch {
	case !c.Start.IsZero() && !c.End.IsZero():
		parts = append(parts, fmt.Sprintf("from %s to %s", c.Start, c.End))
	case !c.Start.IsZero():
		parts = append(parts, "from "+c.Start.String())
	case !c.End.IsZero():
		parts = append(parts, "until "+c.End.String())
	}
	fmt.Fprintf(w, "%d of %d failure(s), filtered by %s\n", shown, total, strings.Join(parts, ", "))
}

func writeFailures(w io.Writer, fs []models.Failure, loc *time.Location) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	headerColor.Fprintln(tw, "ID\tCATEGORY\tDATE\tTIME\tSTATUS\tDESCRIPTION")
	for _, f := range fs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID,
			categoryBadge(f.Category),
			orDash(f.Date(loc)),
			orDash(f.Time(loc)),
			statusBadge(f.Status),
			truncate(f.Description, 60),
		)
	}
}

func writeFailure(w io.Writer, f models.Failure, loc *time.Location) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", labelColor.Sprint(label), value)
	}
	row("ID", f.ID)
	row("Category", categoryBadge(f.Category))
	row("Status", statusBadge(f.Status))
	row("Date", orDash(f.Date(loc)))
	row("Time", orDash(f.Time(loc)))
	row("Description", f.Description)
}

func writeUsers(w io.Writer, us []models.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	headerColor.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range us {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n", u.ID, u.Username, orDash(u.Name), orDash(u.Email), orDash(u.Role), u.Active)
	}
}

func writeUser(w io.Writer, u models.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", labelColor.Sprint(label), value)
	}
	row("ID", fmt.Sprint(u.ID))
	row("Username", u.Username)
	row("Name", orDash(u.Name))
	row("Email", orDash(u.Email))
	row("Role", orDash(u.Role))
	row("Active", fmt.Sprint(u.Active))
	if u.CreatedAt != "" {
		row("Created", u.CreatedAt)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
