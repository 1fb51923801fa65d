// Command sesictl is the terminal console for membership applicants and
// reviewers.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"sesi-membership/internal/console/intake"
	"sesi-membership/internal/console/queue"
	"sesi-membership/internal/console/review"
	"sesi-membership/internal/logger"
	"sesi-membership/pkg/client"
)

const usage = `usage: sesictl [-api URL] <command> [args]

commands:
  login -email E [-password P]   sign in as an administrator
  logout                         forget the stored session
  states                         list states
  districts STATE_ID             list districts of a state
  apply -form FILE.yaml          submit a membership application
  queue [-status S] [-search Q]  list applications
  show ID                        show one application and its history
  transition [-yes] ID STATUS    move an application to STATUS
  notes ID TEXT                  save admin notes without changing status
  export [-status S] -out FILE   download the queue as xlsx
  members                        list members
  stats                          dashboard counts
`

func main() {
	api := flag.String("api", envOr("SESI_API_URL", "http://localhost:8080"), "service base URL")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if _, err := logger.Init(logger.Config{Level: level, Format: "text"}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	c := client.New(client.Options{
		BaseURL: *api,
		Session: client.NewFileSession(sessionPath),
		OnUnauthorized: func() {
			fmt.Fprintln(os.Stderr, "Session expired or not signed in. Run: sesictl login -email <admin email>")
			os.Exit(3)
		},
	})

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := run(context.Background(), c, cmd, args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string, in io.Reader, out io.Writer) error {
	stdin := bufio.NewReader(in)
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "admin email")
		password := fs.String("password", "", "password (prompted when empty)")
		_ = fs.Parse(args)
		if *password == "" {
			fmt.Fprint(out, "Password: ")
			line, _ := stdin.ReadString('\n')
			*password = strings.TrimSpace(line)
		}
		res, err := c.Login(ctx, *email, *password)
		if err != nil {
			return errors.New(client.Message(err, "login failed"))
		}
		fmt.Fprintf(out, "Signed in as %s (%s)\n", res.User.Email, res.User.Role)
		return nil

	case "logout":
		return c.Logout()

	case "states":
		states, err := c.States(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, s := range states {
			fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Name)
		}
		return tw.Flush()

	case "districts":
		if len(args) != 1 {
			return errors.New("districts needs STATE_ID")
		}
		ds, err := c.Districts(ctx, args[0])
		if err != nil {
			return errors.New(client.Message(err, "could not load districts"))
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, d := range ds {
			fmt.Fprintf(tw, "%s\t%s\n", d.ID, d.Name)
		}
		return tw.Flush()

	case "apply":
		fs := flag.NewFlagSet("apply", flag.ExitOnError)
		formPath := fs.String("form", "", "YAML file with the application fields and document paths")
		_ = fs.Parse(args)
		return apply(ctx, c, *formPath, out)

	case "queue":
		fs := flag.NewFlagSet("queue", flag.ExitOnError)
		status := fs.String("status", queue.StatusAll, "submitted, under_review, approved, rejected or all")
		search := fs.String("search", "", "name, email or mobile contains")
		_ = fs.Parse(args)
		return showQueue(ctx, c, *status, *search, out)

	case "show":
		if len(args) != 1 {
			return errors.New("show needs ID")
		}
		d := review.New(c, nil)
		if err := d.Load(ctx, args[0]); err != nil {
			return errors.New(client.Message(err, "could not load application"))
		}
		printDetail(out, d, c.FileURL)
		return nil

	case "transition":
		fs := flag.NewFlagSet("transition", flag.ExitOnError)
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		_ = fs.Parse(args)
		if fs.NArg() != 2 {
			return errors.New("transition needs ID STATUS")
		}
		confirm := review.ConfirmFunc(func(prompt string) bool {
			if *yes {
				return true
			}
			fmt.Fprintf(out, "%s [y/N] ", prompt)
			line, _ := stdin.ReadString('\n')
			return strings.EqualFold(strings.TrimSpace(line), "y")
		})
		d := review.New(c, confirm)
		if err := d.Load(ctx, fs.Arg(0)); err != nil {
			return errors.New(client.Message(err, "could not load application"))
		}
		ack, err := d.Transition(ctx, fs.Arg(1))
		if errors.Is(err, review.ErrDeclined) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ack)
		return nil

	case "notes":
		if len(args) < 2 {
			return errors.New("notes needs ID TEXT")
		}
		d := review.New(c, nil)
		if err := d.Load(ctx, args[0]); err != nil {
			return errors.New(client.Message(err, "could not load application"))
		}
		if err := d.SaveNotes(ctx, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintln(out, "Notes saved.")
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		status := fs.String("status", queue.StatusAll, "status filter")
		path := fs.String("out", "applications.xlsx", "output file")
		_ = fs.Parse(args)
		b, err := c.ExportApplications(ctx, *status)
		if err != nil {
			return errors.New(client.Message(err, "export failed"))
		}
		if err := os.WriteFile(*path, b, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%d bytes)\n", *path, len(b))
		return nil

	case "members":
		ms, err := c.Members(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NUMBER\tNAME\tCITY\tSTATE\tSTATUS")
		for _, m := range ms {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.MembershipNumber, m.FullName, m.City, m.State, m.Status)
		}
		return tw.Flush()

	case "stats":
		s, err := c.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Members: %d total, %d active\n", s.TotalMembers, s.ActiveMembers)
		fmt.Fprintf(out, "Applications: %d total, %d pending\n", s.TotalApplications, s.PendingApplications)
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func apply(ctx context.Context, c *client.Client, path string, out io.Writer) error {
	if path == "" {
		return errors.New("apply needs -form FILE.yaml")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f intake.Form
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	in := intake.New(c)
	in.Form = f
	// route both addresses through the pickers so the district must belong to the state
	for _, p := range []struct {
		picker *intake.AddressPicker
		addr   intake.Address
	}{{in.Comm, f.CommAddress}, {in.Work, f.WorkAddress}} {
		if err := p.picker.SelectState(ctx, p.addr.StateID); err != nil {
			return errors.New(client.Message(err, "could not load districts"))
		}
		if p.addr.DistrictID != "" {
			if err := p.picker.SelectDistrict(p.addr.DistrictID); err != nil {
				return err
			}
		}
	}

	rec, err := in.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\nApplication ID: %s\nA confirmation will be sent to %s\n", rec.Message, rec.ApplicationID, rec.Email)
	return nil
}

func showQueue(ctx context.Context, c *client.Client, status, search string, out io.Writer) error {
	q := queue.New(c)
	if err := q.Load(ctx); err != nil {
		return err
	}
	q.SetStatus(status)
	q.SetSearch(search)

	counts := q.Counts()
	fmt.Fprintf(out, "Total %d | submitted %d | under_review %d | approved %d | rejected %d\n\n",
		counts.Total, counts.ByStatus["submitted"], counts.ByStatus["under_review"],
		counts.ByStatus["approved"], counts.ByStatus["rejected"])
	if q.Empty() {
		fmt.Fprintln(out, "No applications found")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tMOBILE\tSTATUS\tSUBMITTED")
	for _, a := range q.Visible() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.FullName, a.Email, a.Mobile, a.Status, a.SubmittedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func printDetail(out io.Writer, d *review.Detail, fileURL func(string) string) {
	a := d.Application()
	fmt.Fprintf(out, "%s  [%s]\n", a.FullName, a.Status)
	fmt.Fprintf(out, "ID:            %s\n", a.ID)
	fmt.Fprintf(out, "Email/Mobile:  %s / %s\n", a.Email, a.Mobile)
	fmt.Fprintf(out, "Reg. no:       %s\n", a.MedicalCouncilRegNo)
	fmt.Fprintf(out, "Qualification: %s (%d yrs)\n", a.Qualification, a.YearsExperience)
	fmt.Fprintf(out, "Address:       %s, %s, %s %s\n", a.CommAddress.Line, a.CommAddress.DistrictName, a.CommAddress.StateName, a.CommAddress.Pincode)
	fmt.Fprintf(out, "Work:          %s, %s, %s %s\n", a.WorkAddress.Line, a.WorkAddress.DistrictName, a.WorkAddress.StateName, a.WorkAddress.Pincode)
	if a.MembershipNumber != "" {
		fmt.Fprintf(out, "Membership:    %s\n", a.MembershipNumber)
	}
	if a.CertificatePath != "" {
		fmt.Fprintf(out, "Certificate:   %s\n", fileURL(a.CertificatePath))
	}
	fmt.Fprintf(out, "Notes:         %s\n", d.Notes())
	if len(a.Documents) > 0 {
		fmt.Fprintln(out, "Documents:")
	}
	for _, doc := range a.Documents {
		fmt.Fprintf(out, "  %-32s %s\n", doc.Type, path.Base(doc.Path))
		fmt.Fprintf(out, "  %-32s %s\n", "", fileURL(doc.Path))
	}
	if acts := d.Actions(); len(acts) > 0 {
		fmt.Fprintf(out, "Actions:       %s\n", strings.Join(acts, ", "))
	}
	if len(a.History) > 0 {
		fmt.Fprintln(out, "History:")
		for _, h := range a.History {
			fmt.Fprintf(out, "  %s  %s -> %s by %s\n", h.CreatedAt.Format("2006-01-02 15:04"), h.FromStatus, h.ToStatus, h.ChangedBy)
		}
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
