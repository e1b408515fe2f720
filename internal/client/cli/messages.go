package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

func (a *App) listConversations(ctx context.Context) error {
	convs, err := a.conversations.Conversations(ctx)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(a.out, "No conversations yet. Use 'chat <tutor-id>' to start one.")
		return nil
	}
	for _, c := range convs {
		line := fmt.Sprintf("%d  %s (%s)  %s", c.ID, c.Name, c.Role, c.Presence)
		if c.LastMessage != "" {
			line += fmt.Sprintf("  last: %q %s", c.LastMessage, c.Time)
		}
		if c.Unread > 0 {
			line += fmt.Sprintf("  [%d unread]", c.Unread)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// openChatWithTutor starts (or resumes) the conversation with a tutor and
// opens it.
func (a *App) openChatWithTutor(ctx context.Context, args []string) error {
	tutorID, err := needInt64Arg(args, "chat <tutor-id>")
	if err != nil {
		return err
	}
	tutor, err := a.tutors.Get(ctx, tutorID)
	if err != nil {
		return err
	}

	conv, created, err := a.conversations.CreateOrGet(ctx, models.ConversationRequest{
		TutorID:      tutor.TutorID,
		TutorName:    tutor.Name,
		TutorSubject: tutor.PrimarySubject(),
	})
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(a.out, "Started a conversation with %s.\n", conv.Name)
	} else {
		fmt.Fprintf(a.out, "Resuming your conversation with %s.\n", conv.Name)
	}
	return a.openConversation(ctx, []string{fmt.Sprint(conv.ID)})
}

func (a *App) openConversation(ctx context.Context, args []string) error {
	id, err := needInt64Arg(args, "open <conversation-id>")
	if err != nil {
		return err
	}
	msgs, err := a.conversations.Select(ctx, id)
	if err != nil {
		return err
	}
	a.printThread(msgs)
	fmt.Fprintln(a.out, "Use 'msg <text>' to reply, 'delmsg <id>' or 'react <id> <emoji>'.")
	return nil
}

func (a *App) printThread(msgs []models.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages yet.")
		return
	}
	for _, m := range msgs {
		who := m.Sender
		if m.IsMe {
			who = "me"
		}
		line := fmt.Sprintf("[%d] %s %s: %s", m.ID, m.Time, who, m.Text)
		if m.Reaction != "" {
			line += "  " + m.Reaction
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) sendMessage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: msg <text>")
	}
	msg, err := a.conversations.Send(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sent [%d].\n", msg.ID)
	return nil
}

func (a *App) deleteMessage(ctx context.Context, args []string) error {
	id, err := needInt64Arg(args, "delmsg <message-id>")
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Delete this message?", a.out) {
		return nil
	}
	if err := a.conversations.Delete(ctx, id, true); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Message deleted.")
	a.printThread(a.conversations.Messages())
	return nil
}

func (a *App) reactToMessage(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: react <message-id> <emoji>")
	}
	id, err := needInt64Arg(args[:1], "react <message-id> <emoji>")
	if err != nil {
		return err
	}
	msg, err := a.conversations.React(ctx, id, args[1])
	if err != nil {
		return err
	}
	if msg.Reaction == "" {
		fmt.Fprintln(a.out, "Reaction removed.")
	} else {
		fmt.Fprintf(a.out, "Reacted with %s.\n", msg.Reaction)
	}
	return nil
}
