package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real
// App satisfies it; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	status() string
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Tab(name string) error
	Edit(field string) error
	Set(field, value string) error
	Save(ctx context.Context) error
	Back() error
	Show()
}

// runREPL reads commands line by line and dispatches them to 'a'. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
// Command errors are reported by the handlers themselves; the loop only
// keeps reading.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("staffkeeper> %s > ", a.status()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, open <id>, delete <id>, tab <general|personal>, edit <field>, set <field> <value>, save, back, show, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "open":
			if len(parts) < 2 {
				printlnFn("Usage: open <id>")
				continue
			}
			_ = a.Open(ctx, parts[1])

		case "delete":
			if len(parts) < 2 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, parts[1])

		case "tab":
			if len(parts) < 2 {
				printlnFn("Usage: tab <general|personal>")
				continue
			}
			_ = a.Tab(parts[1])

		case "edit":
			if len(parts) < 2 {
				printlnFn("Usage: edit <field>")
				continue
			}
			_ = a.Edit(parts[1])

		case "set":
			if len(parts) < 3 {
				printlnFn("Usage: set <field> <value>")
				continue
			}
			_ = a.Set(parts[1], strings.Join(parts[2:], " "))

		case "save":
			_ = a.Save(ctx)

		case "back":
			_ = a.Back()

		case "show":
			a.Show()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// Run starts the REPL over the given app and input scanner.
func Run(ctx context.Context, a *App, scanner *bufio.Scanner) {
	a.Show()
	runREPL(ctx, a, scanner)
}
