package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tutorit/internal/client/services"
)

// bookSession walks a student through booking a lesson with a tutor. The
// price is quoted before the confirmation prompt; nothing is sent until the
// student confirms.
func (a *App) bookSession(ctx context.Context, args []string) error {
	tutorID, err := needInt64Arg(args, "book <tutor-id>")
	if err != nil {
		return err
	}
	tutor, err := a.tutors.Get(ctx, tutorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booking with %s (%s)\n", tutor.Name, formatRate(tutor.HourlyRate))

	subject, err := getSimpleText(a.reader, fmt.Sprintf("Subject [%s]", tutor.PrimarySubject()), a.out)
	if err != nil {
		return err
	}
	if subject == "" {
		subject = tutor.PrimarySubject()
	}
	topic, err := getSimpleText(a.reader, "Topic (optional)", a.out)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	timeOfDay, err := getSimpleText(a.reader, "Time (HH:MM)", a.out)
	if err != nil {
		return err
	}
	duration, err := getSimpleText(a.reader,
		fmt.Sprintf("Duration (%s)", strings.Join(services.DurationLabels(), ", ")), a.out)
	if err != nil {
		return err
	}
	if duration == "" {
		duration = "1 hour"
	}

	quote := a.calc.QuoteFor(ctx, tutor.HourlyRate, duration)
	fmt.Fprintf(a.out, "Lesson %s, platform fee %s, total %s\n",
		"$"+quote.Subtotal.StringFixed(2), "$"+quote.Fee.StringFixed(2), "$"+quote.Total.StringFixed(2))

	if !Confirm(a.reader, "Confirm booking?", a.out) {
		fmt.Fprintln(a.out, "Booking cancelled.")
		return nil
	}

	sess, err := a.lifecycle.Book(ctx, services.BookingRequest{
		TutorID:    tutor.TutorID,
		TutorName:  tutor.Name,
		HourlyRate: tutor.HourlyRate,
		Subject:    subject,
		Topic:      topic,
		Date:       date,
		Time:       timeOfDay,
		Duration:   duration,
		Type:       "Online",
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Booked! Session %s on %s, total %s\n",
		sess.ID, sess.DateTime.Local().Format("2006-01-02 15:04"), formatMoney(sess.Price))
	return nil
}
