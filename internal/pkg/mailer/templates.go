package mailer

import (
	"bytes"
	"html/template"
	"strings"
)

var (
	activationTpl = template.Must(template.New("activation").Parse(
		`<p>Hello {{.Name}},</p><p>Your activation code is <strong>{{.Code}}</strong>.</p><p>The code expires in {{.Minutes}} minutes.</p>`))
	resetTpl = template.Must(template.New("reset").Parse(
		`<p>Hello {{.Name}},</p><p>Use <strong>{{.Code}}</strong> to reset your password.</p><p>If you did not ask for a reset, ignore this e-mail.</p>`))
	bookingStatusTpl = template.Must(template.New("booking_status").Parse(
		`<p>Hello {{.Name}},</p><p>Your booking #{{.BookingID}} on {{.Date}} at {{.Time}} is now <strong>{{.Status}}</strong>.</p>`))
)

func ActivationMessage(to, name, code string, minutes int) (Message, error) {
	body, err := render(activationTpl, map[string]any{"Name": name, "Code": code, "Minutes": minutes})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Activate Your Account", HTML: body}, nil
}

func PasswordResetMessage(to, name, code string) (Message, error) {
	body, err := render(resetTpl, map[string]any{"Name": name, "Code": code})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Password Reset Confirmation", HTML: body}, nil
}

// BookingStatusMessage builds the "Booking <Status>" notice sent to the customer.
func BookingStatusMessage(to, name string, bookingID int64, date, clock, status string) (Message, error) {
	title := Title(status)
	body, err := render(bookingStatusTpl, map[string]any{
		"Name": name, "BookingID": bookingID, "Date": date, "Time": clock, "Status": title,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Booking " + title, HTML: body}, nil
}

// Title upper-cases the first letter of an ASCII status word.
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
