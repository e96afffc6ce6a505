package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var bookingTmpl = template.Must(template.New("booking").Parse(`<p>Hi {{.Client}},</p>
<p>Your session with <strong>{{.Trainer}}</strong> is booked for {{.When}}.</p>
<p>Join on Zoom: <a href="{{.ZoomURL}}">{{.ZoomURL}}</a></p>
<p>See you there,<br>IndVend Fitness</p>`))

// BookingConfirmation builds the email sent after a trainer booking.
// PRE: to is a deliverable address
// POST: returns a request with one recipient and an HTML body
func BookingConfirmation(to, client, trainer, zoomURL string, when time.Time) (SendRequest, error) {
	var buf bytes.Buffer
	err := bookingTmpl.Execute(&buf, struct {
		Client, Trainer, ZoomURL, When string
	}{client, trainer, zoomURL, when.Format("Mon 2 Jan 2006 15:04 MST")})
	if err != nil {
		return SendRequest{}, fmt.Errorf("render booking email: %w", err)
	}
	return SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("Session booked with %s", trainer),
		HTML:    buf.String(),
	}, nil
}
