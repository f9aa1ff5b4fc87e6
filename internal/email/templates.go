package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/CourtPlay/internal/templates/markup"
)

type Message struct {
	Subject string
	Body    string
}

// SlotLine is one booked court and time as it appears in an email.
type SlotLine struct {
	Court      string
	Start      time.Time
	End        time.Time
	PriceCents int64
}

type BookingDetails struct {
	AppName string
	Name    string
	Slots   []SlotLine
	// Location renders the times in the club's zone.
	Location *time.Location
}

func FormatDateTimeRange(start, end time.Time, loc *time.Location) (string, string) {
	if loc == nil {
		loc = time.UTC
	}
	start, end = start.In(loc), end.In(loc)
	date := start.Format("Monday, 2 Jan 2006")
	timeRange := fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04"))
	return date, timeRange
}

// BuildBookingConfirmation lists every slot of one booking with its price
// and the total.
func BuildBookingConfirmation(details BookingDetails) Message {
	appName := strings.TrimSpace(details.AppName)
	if appName == "" {
		appName = "your club"
	}

	subject := "Reservation confirmed"
	if len(details.Slots) > 1 {
		subject = fmt.Sprintf("%d reservations confirmed", len(details.Slots))
	}
	subject = fmt.Sprintf("%s - %s", subject, appName)

	lines := []string{greeting(details.Name), "", "Your booking is confirmed:", ""}
	var total int64
	for _, slot := range details.Slots {
		lines = append(lines, slotLine(slot, details.Location))
		total += slot.PriceCents
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total: %s", markup.Price(total)),
		"",
		"You can cancel a reservation from My reservations until it starts.",
	)

	return Message{Subject: subject, Body: strings.Join(lines, "\n")}
}

// BuildCancellationEmail reports one cancelled slot. byStaff notes that
// someone other than the owner cancelled it.
func BuildCancellationEmail(details BookingDetails, byStaff bool) Message {
	appName := strings.TrimSpace(details.AppName)
	if appName == "" {
		appName = "your club"
	}

	lines := []string{greeting(details.Name), ""}
	if byStaff {
		lines = append(lines, "The club has cancelled your reservation:")
	} else {
		lines = append(lines, "Your reservation has been cancelled:")
	}
	lines = append(lines, "")
	for _, slot := range details.Slots {
		lines = append(lines, slotLine(slot, details.Location))
	}

	return Message{
		Subject: fmt.Sprintf("Reservation cancelled - %s", appName),
		Body:    strings.Join(lines, "\n"),
	}
}

func greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hello %s,", name)
}

func slotLine(slot SlotLine, loc *time.Location) string {
	date, timeRange := FormatDateTimeRange(slot.Start, slot.End, loc)
	court := strings.TrimSpace(slot.Court)
	if court == "" {
		court = "Court"
	}
	return fmt.Sprintf("- %s, %s %s (%s)", court, date, timeRange, markup.Price(slot.PriceCents))
}
