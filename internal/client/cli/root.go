package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/client/services"
)

func (a *App) getStatus() string {
	s := ""
	if id := a.identity(); id.Authenticated {
		s = fmt.Sprintf("%s/%s ", id.User.Name, id.Role)
	}
	if a.Mode != "" {
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// commandViews maps guarded commands to the view they open.
var commandViews = map[string]services.View{
	"dashboard": services.ViewDashboard,
	"tutors":    services.ViewFindTutors,
	"tutor":     services.ViewFindTutors,
	"book":      services.ViewFindTutors,
	"sessions":  services.ViewSessions,
	"students":  services.ViewStudents,
	"messages":  services.ViewMessages,
	"chat":      services.ViewMessages,
	"open":      services.ViewMessages,
	"msg":       services.ViewMessages,
	"delmsg":    services.ViewMessages,
	"react":     services.ViewMessages,
	"start":     services.ViewSessionRoom,
	"end":       services.ViewSessionRoom,
	"cancel":    services.ViewSessions,
	"remove":    services.ViewSessions,
	"rate":      services.ViewSessions,
	"profile":   services.ViewSettings,
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to TutorIT CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.resolveAndGreet(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	for {
		fmt.Fprintf(a.out, "tutorit %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return
		}
		if !a.allow(ctx, cmd) {
			continue
		}
		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
		}
	}
}

// allow runs the identity gate over a guarded command. Redirects are acted
// on immediately: the redirected view is rendered instead of the requested
// one, so a wrong-role request degrades to something useful rather than an
// error.
func (a *App) allow(ctx context.Context, cmd string) bool {
	view, guarded := commandViews[cmd]
	if !guarded {
		return true
	}
	switch services.GuardView(a.identity(), view) {
	case services.RedirectNone:
		return true
	case services.RedirectLogin:
		fmt.Fprintln(a.out, "Please log in first (type 'login').")
	case services.RedirectDashboard:
		fmt.Fprintln(a.out, "That page is not available for your role.")
		if err := a.showDashboard(ctx); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
		}
	case services.RedirectStudentSessions:
		if err := a.listSessions(ctx, models.RoleStudent); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
		}
	case services.RedirectTutorSessions:
		if err := a.listSessions(ctx, models.RoleTutor); err != nil {
			fmt.Fprintf(a.out, "Error: %s\n", err)
		}
	}
	return false
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
	case "login":
		return a.Login(ctx)
	case "register":
		return a.Register(ctx, args)
	case "logout":
		return a.Logout(ctx)
	case "dashboard":
		return a.showDashboard(ctx)
	case "tutors":
		return a.listTutors(ctx)
	case "tutor":
		return a.showTutor(ctx, args)
	case "profile":
		return a.editProfile(ctx)
	case "book":
		return a.bookSession(ctx, args)
	case "sessions":
		// The guard resolves this to the role-specific view before dispatch.
		return a.listSessions(ctx, a.identity().Role)
	case "start":
		return a.startSession(ctx, args)
	case "end":
		return a.endSession(ctx, args)
	case "cancel":
		return a.cancelSession(ctx, args)
	case "remove":
		return a.removeSession(ctx, args)
	case "rate":
		return a.rateSession(ctx, args)
	case "students":
		return a.listStudents(ctx)
	case "messages":
		return a.listConversations(ctx)
	case "chat":
		return a.openChatWithTutor(ctx, args)
	case "open":
		return a.openConversation(ctx, args)
	case "msg":
		return a.sendMessage(ctx, args)
	case "delmsg":
		return a.deleteMessage(ctx, args)
	case "react":
		return a.reactToMessage(ctx, args)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return nil
}

func (a *App) resolveAndGreet(ctx context.Context) {
	if id := a.auth.Resolve(ctx); id.Authenticated {
		fmt.Fprintf(a.out, "Logged in as %s (%s)\n", id.User.Name, id.Role)
		a.setMode(ctx, ModeOnline)
		return
	}
	fmt.Fprintln(a.out, "Not logged in. Use 'login' or 'register'.")
}

func (a *App) printHelp() {
	if id := a.identity(); id.Authenticated {
		fmt.Fprintln(a.out, "Available commands: dashboard, tutors, tutor <id>, sessions, messages,")
		fmt.Fprintln(a.out, "  chat <tutor-id>, open <conversation-id>, msg <text>, delmsg <id>, react <id> <emoji>,")
		if id.Role == models.RoleStudent {
			fmt.Fprintln(a.out, "  book <tutor-id>, cancel <id>, remove <id>, end <id>, rate <id>, logout, exit")
		} else {
			fmt.Fprintln(a.out, "  students, profile, start <id>, cancel <id>, end <id>, logout, exit")
		}
		return
	}
	fmt.Fprintln(a.out, "Available commands: login, register student|tutor, exit")
}
