package utils

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/jordan-wright/email"
)

// SendOTPEmail sends the one-time code as plain text. Kept synchronous so a
// delivery failure reaches the caller before the code starts its expiry
// countdown.
func SendOTPEmail(to, code string) error {
	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{to}
	e.Subject = "Your verification code"
	e.Text = []byte(fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))

	addr := os.Getenv("SMTP_HOST") + ":" + os.Getenv("SMTP_PORT")
	auth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_HOST"))
	return e.Send(addr, auth)
}
