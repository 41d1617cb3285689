package resend

import (
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"visitor-desk/internal/ports/notify"
)

// Mailer implementa notify.Notifier sobre la API de Resend.
type Mailer struct {
	client   *resend.Client
	from     string
	fromName string
	log      *zap.Logger
}

func NewMailer(apiKey, from, fromName string, log *zap.Logger) (*Mailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		log:      log,
	}, nil
}

func (m *Mailer) Notify(ctx context.Context, v notify.Visit, kind notify.EventKind) error {
	subject, body, err := compose(v, kind)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.from),
		To:      []string{v.Email},
		Subject: subject,
		Text:    body,
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	m.log.Info("notification email sent",
		zap.String("event", string(kind)),
		zap.String("to", v.Email),
		zap.String("message_id", sent.Id),
	)
	return nil
}

// compose arma asunto y cuerpo por sustitución de campos de la visita.
func compose(v notify.Visit, kind notify.EventKind) (subject, body string, err error) {
	office := v.Office
	if office == "" {
		office = "TripVenza Holidays / Ellora Manpower"
	}

	switch kind {
	case notify.EventRegistered:
		subject = fmt.Sprintf("Visitation Request Received - %s", office)
		body = fmt.Sprintf(`Dear %s,

Thank you for reaching out to %s. Your visitation request has been successfully received.

Details of your request:
- Purpose: %s
- Office: %s

We are currently reviewing your request and will notify you as soon as your status is updated.

Best regards,
The %s Team`, v.Name, office, v.Purpose, office, office)

	case notify.EventApproved:
		when := v.AppointmentTime
		if v.VisitDate != nil {
			when = v.VisitDate.Format("02-01-2006") + " " + v.AppointmentTime
		}
		subject = fmt.Sprintf("Great News! Your %s Meeting is Confirmed", office)
		body = fmt.Sprintf(`Dear %s,

We are delighted to confirm your meeting with %s! We have officially reserved your slot and are excited to discuss your plans.

Time: %s

We look forward to welcoming you. See you soon!

Best regards,
The %s Team`, v.Name, office, when, office)

	case notify.EventRejected:
		subject = "Meeting Request Update - TripVenza Holidays"
		body = fmt.Sprintf(`Dear %s,

We regret to inform you that your meeting request at %s has been rejected at this time.

Best regards,
The %s Team`, v.Name, office, office)

	case notify.EventCheckedOut:
		subject = fmt.Sprintf("Thank you for visiting %s", office)
		body = fmt.Sprintf(`Dear %s,

It was a pleasure having you at our office today. We hope your meeting was productive.

If you have any further questions or follow-up items, please don't hesitate to reach out to us.

Have a wonderful day ahead!

Best regards,
The %s Team`, v.Name, office)

	default:
		return "", "", fmt.Errorf("unknown notification event %q", string(kind))
	}

	return subject, body, nil
}
