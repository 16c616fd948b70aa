package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"tubehub/catalog-api/internal/model"
)

// Notifier delivers a message to a single recipient. The SMTP dialer is the
// production implementation; tests swap in a recorder.
type Notifier interface {
	Notify(recipient, subject, body string) error
}

// MailNotifier sends plain-text mail through the configured SMTP relay.
type MailNotifier struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewMailNotifier() *MailNotifier {
	return &MailNotifier{
		host: viper.GetString("mail.host"),
		port: viper.GetInt("mail.port"),
		user: viper.GetString("mail.user"),
		pass: viper.GetString("mail.password"),
		from: viper.GetString("mail.noreply_address"),
	}
}

func (n *MailNotifier) Notify(recipient, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.host, n.port, n.user, n.pass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail, %w", err)
	}

	return nil
}

// uploadFailureMail composes the reason-specific message sent to an
// uploader whose video could not be ingested.
func uploadFailureMail(title string, resp model.CISResponse) (subject, body string) {
	site := viper.GetString("app.site_name")
	subject = fmt.Sprintf("[%s] Upload Error", site)

	switch resp {
	case model.CISUnreachable:
		body = fmt.Sprintf(
			"Your video %q could not be processed because the transcoding service was unreachable. Please try uploading it again later.",
			title)
	default:
		body = fmt.Sprintf(
			"Your video %q could not be processed due to an internal transcoding error. Our operators have been notified; you may retry the upload.",
			title)
	}

	return subject, body
}
