package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	canMutate(ctx context.Context) bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Retry(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Bookmark(ctx context.Context, args []string) error
	Bookmarks(ctx context.Context, args []string) error
}

// helpText lists the commands available right now. Admin commands are only
// shown to administrators.
func helpText(loggedIn, admin bool) string {
	cmds := []string{"(l)ist", "retry", "show <id>"}
	if loggedIn {
		cmds = append(cmds, "bookmark <id>", "bookmarks", "whoami")
	}
	if admin {
		cmds = append(cmds, "create", "edit <id>", "delete <id>")
	}
	if loggedIn {
		cmds = append(cmds, "logout")
	} else {
		cmds = append(cmds, "register", "login")
	}
	cmds = append(cmds, "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts a simple read–eval–print loop for the Evently CLI.
//
// It reads a line from reader, splits it into words with shell quoting rules
// (so "sunset  hall" stays one argument with both spaces), parses the first
// word as the command, and dispatches the rest to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn). Commands:
//
//	Everyone:
//	  - help                   show available commands
//	  - list [-q text] [-c category] [-s sort] [reset]
//	  - retry                  repeat the last list after a failure
//	  - show <id>              service details
//	  - register | login       when logged out
//	  - exit | quit            leave the program
//
//	Logged in:
//	  - bookmark <id>, bookmarks, whoami, logout
//
//	Administrators:
//	  - create, edit <id>, delete <id>
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("evently %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts, err := shellquote.Split(line)
		if err != nil {
			printlnFn("Could not read command:", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn(ctx), a.canMutate(ctx)))

		case "register":
			_ = a.Register(ctx, args)

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx, args)

		case "whoami":
			_ = a.WhoAmI(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "retry":
			_ = a.Retry(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "create":
			_ = a.Create(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "bookmark":
			_ = a.Bookmark(ctx, args)

		case "bookmarks":
			_ = a.Bookmarks(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
