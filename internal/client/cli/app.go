// Package cli is the interactive terminal front end. It drives the
// navigation shell and its controllers from a read-eval-print loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/avolkov/StaffKeeper/internal/client/controller"
	"github.com/avolkov/StaffKeeper/internal/client/router"
	"github.com/avolkov/StaffKeeper/internal/client/session"
	"github.com/avolkov/StaffKeeper/internal/client/shell"
)

// printNotifier renders toast messages as terminal lines.
type printNotifier struct {
	w io.Writer
}

func (n printNotifier) Success(msg string) {
	fmt.Fprintln(n.w, msg)
}

func (n printNotifier) Error(msg string) {
	fmt.Fprintln(n.w, "Error:", msg)
}

// App wires the session and the navigation shell to terminal I/O. Each
// command method maps onto controller operations, so all state and
// validation stays in the controllers.
type App struct {
	sess   *session.Context
	shell  *shell.Shell
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the terminal front end over an already bootstrapped
// session. The shell is mounted immediately.
func NewApp(ctx context.Context, sess *session.Context, store controller.RecordStore, in io.Reader, out io.Writer) *App {
	return &App{
		sess:   sess,
		shell:  shell.New(ctx, sess, store, printNotifier{w: out}),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Close unmounts the shell.
func (a *App) Close() {
	a.shell.Close()
}

func (a *App) isLoggedIn() bool {
	return a.sess.State() == session.Authenticated
}

// status describes the session for the REPL prompt.
func (a *App) status() string {
	if user := a.sess.Current(); user != nil {
		return user.Email
	}
	return "signed out"
}

func (a *App) credentials() (email, password string, err error) {
	email, err = getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err = getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// Login prompts for credentials and signs in. On success the shell
// switches from the auth view to the employee list.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	if err := a.sess.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	a.Show()
	return nil
}

// Register prompts for credentials and creates an account.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	if err := a.sess.Register(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	a.Show()
	return nil
}

// Logout signs out. Local state clears even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sess.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// list navigates to the employee list and returns its controller.
func (a *App) list() *controller.ListController {
	a.shell.Navigate(router.ListFragment)
	return a.shell.Active().List
}

// detail returns the mounted detail controller, or nil with a hint
// printed when no record is open.
func (a *App) detail() *controller.DetailController {
	d := a.shell.Active().Detail
	if d == nil {
		fmt.Fprintln(a.out, "No employee open; use: open <id>")
	}
	return d
}

// List renders the employee table.
func (a *App) List(ctx context.Context) error {
	c := a.list()
	if c == nil {
		return nil
	}
	if c.LoadError != "" {
		fmt.Fprintln(a.out, "Error:", c.LoadError)
		return nil
	}
	if len(c.Employees) == 0 {
		fmt.Fprintln(a.out, "No employees yet")
		return nil
	}
	for _, e := range c.Employees {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Email, e.Position, e.Department,
			strconv.FormatFloat(e.Salary, 'f', -1, 64))
	}
	return nil
}

// Add walks the two-step add-employee wizard. Step one collects name
// and email; step two collects the job fields. Validation errors are
// shown inline and abort the wizard without saving anything.
func (a *App) Add(ctx context.Context) error {
	c := a.list()
	if c == nil {
		return nil
	}
	c.OpenForm()

	var err error
	if c.Form.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if c.Form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if !c.SubmitStep1() {
		a.printFormErrors(c)
		c.CancelForm()
		return nil
	}

	if c.Form.Position, err = getSimpleText(a.reader, "Position", a.out); err != nil {
		return err
	}
	if c.Form.Department, err = getSimpleText(a.reader, "Department", a.out); err != nil {
		return err
	}
	if c.Form.Salary, err = getSimpleText(a.reader, "Salary", a.out); err != nil {
		return err
	}
	if c.Form.HireDate, err = getSimpleText(a.reader, "Hire date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if !c.SubmitStep2(ctx) {
		a.printFormErrors(c)
		c.CancelForm()
	}
	return nil
}

func (a *App) printFormErrors(c *controller.ListController) {
	for field, msg := range c.Form.Errors {
		fmt.Fprintf(a.out, "%s: %s\n", field, msg)
	}
}

// Open navigates to one employee's detail view and renders it.
func (a *App) Open(ctx context.Context, id string) error {
	a.shell.Navigate(router.DetailFragment(id))
	a.Show()
	return nil
}

// Delete asks for confirmation and removes the employee.
func (a *App) Delete(ctx context.Context, id string) error {
	c := a.list()
	if c == nil {
		return nil
	}
	c.RequestDelete(id)

	answer, err := getSimpleText(a.reader, "Delete employee "+id+"? (y/n)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "yes" {
		c.CancelDelete()
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	c.ConfirmDelete(ctx)
	return nil
}

// Tab switches the open detail view between its field groups.
func (a *App) Tab(name string) error {
	c := a.detail()
	if c == nil {
		return nil
	}
	c.SwitchTab(controller.Tab(name))
	a.Show()
	return nil
}

// Edit unlocks one field of the open record for editing.
func (a *App) Edit(field string) error {
	c := a.detail()
	if c == nil {
		return nil
	}
	c.EnableEdit(field)
	return nil
}

// Set writes a value into an unlocked field of the open record.
func (a *App) Set(field, value string) error {
	c := a.detail()
	if c == nil {
		return nil
	}
	if !c.IsEditable(field) {
		fmt.Fprintf(a.out, "Field %q is locked; use: edit %s\n", field, field)
		return nil
	}
	if err := c.SetField(field, value); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return nil
}

// Save persists the open record's draft.
func (a *App) Save(ctx context.Context) error {
	c := a.detail()
	if c == nil {
		return nil
	}
	c.Save(ctx)
	return nil
}

// Back returns from the detail view to the list.
func (a *App) Back() error {
	c := a.detail()
	if c == nil {
		return nil
	}
	c.Back()
	return nil
}

// Show renders whatever view the shell currently has mounted.
func (a *App) Show() {
	view := a.shell.Active()
	switch view.Kind {
	case shell.KindAuth:
		fmt.Fprintln(a.out, "Not signed in; use: login or register")
	case shell.KindList:
		_ = a.List(context.Background())
	case shell.KindDetail:
		a.renderDetail(view.Detail)
	}
}

func (a *App) renderDetail(c *controller.DetailController) {
	if c.Err != "" {
		fmt.Fprintln(a.out, "Error:", c.Err)
		return
	}

	fields := controller.GeneralFields
	if c.ActiveTab == controller.TabPersonal {
		fields = controller.PersonalFields
	}

	fmt.Fprintf(a.out, "Employee %s (%s tab)\n", c.EmployeeID, c.ActiveTab)
	for _, f := range fields {
		lock := ""
		if c.IsEditable(f) {
			lock = " *"
		}
		fmt.Fprintf(a.out, "  %s: %s%s\n", f, c.Field(f), lock)
	}
}
