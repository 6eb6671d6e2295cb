package service

import (
	"fmt"
	"strings"

	"openstudy/shop-api/model"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a templated mail to a single recipient. The SMTP
// implementation is swapped out for a recording fake in tests.
type Mailer interface {
	Send(to, subject, template string, data map[string]string) error
}

const verificationTemplate = `<p>Hi {{name}},</p>
<p>Click <a href='{{link}}'>here</a> to verify your account.</p>
<p>This link will expire in {{ttl}}.</p>`

const welcomeTemplate = `<p>Hi {{name}},</p>
<p>Your email has been verified. Welcome aboard, happy shopping!</p>`

const passwordResetTemplate = `<p>Hi {{name}},</p>
<p>Click <a href='{{link}}'>here</a> to reset your password.</p>
<p>This link will expire in {{ttl}}. If you didn't request this, you can ignore this mail.</p>`

func renderTemplate(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (s *SMTPMailer) Send(to, subject, template string, data map[string]string) error {
	from := viper.GetString("mail.sender")
	if to == from {
		return fmt.Errorf("invalid recipient address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", renderTemplate(template, data))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}

// SendVerificationMail mails the account-activation link for t to the user
func SendVerificationMail(m Mailer, user *model.User, t *model.VerificationToken) error {
	link := fmt.Sprintf("%s/verify?token=%s", viper.GetString("host.server_url"), t.Token)

	return m.Send(user.Email, "Verify your email address", verificationTemplate, map[string]string{
		"name": user.FullName,
		"link": link,
		"ttl":  viper.GetDuration("verification.verify_ttl").String(),
	})
}

// SendWelcomeMail is best-effort, callers may ignore the error
func SendWelcomeMail(m Mailer, user *model.User) error {
	return m.Send(user.Email, "Welcome!", welcomeTemplate, map[string]string{
		"name": user.FullName,
	})
}

// SendPasswordResetMail mails the reset link for t to the user
func SendPasswordResetMail(m Mailer, user *model.User, t *model.VerificationToken) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", viper.GetString("host.server_url"), t.Token)

	return m.Send(user.Email, "Reset your password", passwordResetTemplate, map[string]string{
		"name": user.FullName,
		"link": link,
		"ttl":  viper.GetDuration("verification.reset_ttl").String(),
	})
}
