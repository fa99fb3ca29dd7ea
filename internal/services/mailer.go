package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"yogurt-cleaning/internal/config"
	"yogurt-cleaning/internal/models"
)

// SMTPNotifier mails the back office when crew matching comes up short.
type SMTPNotifier struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:       cfg.SMTPUser,
		adminEmail: cfg.AdminEmail,
	}
}

func (n *SMTPNotifier) NotifyInsufficientCrew(order models.Order, found int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.adminEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order %s needs crew", order.ID.Hex()))
	m.SetBody("text/plain", fmt.Sprintf(
		"Order %s on %s needs %d cleaners, only %d are free. Reschedule or add staff.",
		order.ID.Hex(),
		order.StartTime.Format("2006-01-02 15:04"),
		order.CleanersCount,
		found,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		log.Println("Failed to send crew email:", err)
		return err
	}
	return nil
}
