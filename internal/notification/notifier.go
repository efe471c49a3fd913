package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html><body>
<h2>Your luggage storage is booked</h2>
<p>Hi {{.CustomerName}},</p>
<p>Order <strong>{{.OrderNumber}}</strong> at {{.StoreName}}, {{.StoreAddress}}.</p>
<table>
<tr><td>Drop-off</td><td>{{.DropOffDate}} {{.DropOffTime}}</td></tr>
<tr><td>Pick-up</td><td>{{.PickUpDate}} {{.PickUpTime}}</td></tr>
<tr><td>Bags</td><td>{{.TotalBags}} ({{.Plan}} plan, {{.Duration}} day(s))</td></tr>
<tr><td>Total</td><td>{{.Currency}} {{printf "%.2f" .TotalAmount}}</td></tr>
</table>
</body></html>`))

var enquiryTmpl = template.Must(template.New("enquiry").Parse(`<!DOCTYPE html>
<html><body>
<h2>New enquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Mobile:</strong> {{.Mobile}}</p>
<p>{{.Message}}</p>
</body></html>`))

var ackTmpl = template.Must(template.New("ack").Parse(`<!DOCTYPE html>
<html><body>
<p>Hi {{.Name}},</p>
<p>Thanks for reaching out. We received your message and will get back to you shortly.</p>
</body></html>`))

// OrderConfirmation is the content of a booking confirmation email.
type OrderConfirmation struct {
	To           string
	CustomerName string
	OrderNumber  string
	StoreName    string
	StoreAddress string
	DropOffDate  string
	DropOffTime  string
	PickUpDate   string
	PickUpTime   string
	TotalBags    int
	Plan         string
	Duration     int
	TotalAmount  float64
	Currency     string
}

// Enquiry is a contact form submission.
type Enquiry struct {
	Name    string
	Email   string
	Mobile  string
	Message string
}

// Notifier renders and sends customer and operator emails.
type Notifier struct {
	mailer        Mailer
	operatorEmail string
}

// NewNotifier creates a Notifier. operatorEmail receives enquiries.
func NewNotifier(mailer Mailer, operatorEmail string) *Notifier {
	return &Notifier{mailer: mailer, operatorEmail: operatorEmail}
}

// SendOrderConfirmation mails the booking summary to the customer.
func (n *Notifier) SendOrderConfirmation(ctx context.Context, c OrderConfirmation) error {
	if c.CustomerName == "" {
		c.CustomerName = "there"
	}
	body, err := render(confirmationTmpl, c)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		To:      []string{c.To},
		Subject: fmt.Sprintf("Booking confirmed: %s", c.OrderNumber),
		HTML:    body,
	})
}

// SendEnquiry forwards an enquiry to the operator and acknowledges the sender.
func (n *Notifier) SendEnquiry(ctx context.Context, e Enquiry) error {
	if n.operatorEmail == "" {
		return fmt.Errorf("operator email is not configured")
	}
	body, err := render(enquiryTmpl, e)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, Message{
		To:      []string{n.operatorEmail},
		ReplyTo: e.Email,
		Subject: "New enquiry from " + e.Name,
		HTML:    body,
	}); err != nil {
		return fmt.Errorf("send enquiry to operator: %w", err)
	}

	ack, err := render(ackTmpl, e)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, Message{
		To:      []string{e.Email},
		Subject: "We received your enquiry",
		HTML:    ack,
	}); err != nil {
		return fmt.Errorf("send enquiry acknowledgement: %w", err)
	}
	return nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
