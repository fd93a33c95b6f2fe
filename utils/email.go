package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// OrderConfirmationData feeds the order confirmation template.
type OrderConfirmationData struct {
	OrderNumber   string
	CustomerName  string
	ItemCount     int
	TotalAmount   float64
	PaymentMethod string
	DetailLink    string
}

// RefundNotificationData feeds the refund template.
type RefundNotificationData struct {
	OrderNumber   string
	CustomerName  string
	RefundAmount  float64
	WalletBalance float64
}

func sendHTMLEmail(to, subject, tmplPath string, data any) {
	go func() { // async so the response is not delayed by SMTP
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load email template %s: %v", tmplPath, err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render email template %s: %v", tmplPath, err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send email to %s: %v", to, err)
		}
	}()
}

// SendOrderConfirmationEmail mails the checkout summary (async).
func SendOrderConfirmationEmail(to string, data OrderConfirmationData) {
	sendHTMLEmail(to, "Order confirmed "+data.OrderNumber, "templates/order_confirmation.html", data)
}

// SendRefundNotificationEmail mails the wallet refund summary (async).
func SendRefundNotificationEmail(to string, data RefundNotificationData) {
	sendHTMLEmail(to, "Refund processed for order "+data.OrderNumber, "templates/refund_notification.html", data)
}
