package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Anchor <%s>\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
			strings.Join(to, ","), s.From, subject, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

// SendInviteCodeEmail delivers a pending support invite code to the
// address a recovery user wants to invite. Delivery is best-effort; the
// code itself stays valid either way.
func (s *MailService) SendInviteCodeEmail(email, fromUsername, code string, expiresAt time.Time) {
	body := fmt.Sprintf(
		"%s would like you to be part of their support circle on Anchor.\n\n"+
			"Enter this invite code after signing up as a supporter:\n\n"+
			"    %s\n\n"+
			"The code expires at %s.\n",
		fromUsername, FormatInviteCode(code), expiresAt.Format("Jan 2, 2006 15:04 MST"))

	s.sendAsync([]string{email}, fromUsername+" invited you to Anchor", body)
}
