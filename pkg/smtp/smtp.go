package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	CreateSmtp(userEmail string, otp string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	return &smtp{
		auth: smtpPkg.PlainAuth("", mail, password, host),
		mail: mail,
		addr: fmt.Sprintf("%s:%s", host, port),
	}
}

func (s *smtp) CreateSmtp(userEmail string, otp string) error {
	to := []string{userEmail}

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: FinTrack - Codigo de recuperacao\r\n\r\n"+
			"Ola,\r\n\r\nSeu codigo de recuperacao de senha e: %s\r\n\r\n"+
			"O codigo expira em 10 minutos. Se voce nao pediu a troca de senha, ignore este email.\r\n",
		userEmail, otp))

	if err := smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
