package utils

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"os"
	"time"
)

// ErrMailTimeout signals the SMTP host did not answer within the deadline.
// Callers can tell a stalled host apart from a rejected delivery.
var ErrMailTimeout = errors.New("mail: smtp timed out")

// mailTimeout bounds the whole SMTP transaction. A silent host must not hold
// a registration request until the OS TCP timeout.
var mailTimeout = 10 * time.Second

func mailError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrMailTimeout
	}
	return err
}

type SMTPCfg struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func loadSMTP() (*SMTPCfg, error) {
	cfg := &SMTPCfg{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: os.Getenv("SMTP_FROM"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.User == "" || cfg.Pass == "" || cfg.From == "" {
		return nil, fmt.Errorf("SMTP not configured")
	}
	return cfg, nil
}

func siteURL() string {
	u := os.Getenv("SITE_URL")
	if u == "" {
		u = "http://localhost:3000"
	}
	return u
}

type mailTemplate struct {
	subject string
	body    string // fmt template taking the link
}

var verificationTemplates = map[string]mailTemplate{
	"en": {"Confirm your WatchListy account", "Welcome to WatchListy!\n\nConfirm your email address by opening this link:\n%s\n\nThe link expires in 24 hours."},
	"fr": {"Confirmez votre compte WatchListy", "Bienvenue sur WatchListy !\n\nConfirmez votre adresse email en ouvrant ce lien :\n%s\n\nLe lien expire dans 24 heures."},
}

var resetTemplates = map[string]mailTemplate{
	"en": {"Reset your WatchListy password", "A password reset was requested for your account.\n\nChoose a new password here:\n%s\n\nThe link expires in 1 hour. Ignore this mail if you did not ask for it."},
	"fr": {"Réinitialisez votre mot de passe WatchListy", "Une réinitialisation de mot de passe a été demandée pour votre compte.\n\nChoisissez un nouveau mot de passe ici :\n%s\n\nLe lien expire dans 1 heure. Ignorez ce mail si vous n'êtes pas à l'origine de la demande."},
}

func pickTemplate(templates map[string]mailTemplate, locale string) mailTemplate {
	if t, ok := templates[locale]; ok {
		return t
	}
	return templates["en"]
}

// SendVerificationEmail mails the plaintext verification token. The token is
// only ever delivered out-of-band; callers must treat an error as a failed
// registration, not a silent success.
func SendVerificationEmail(to, token, locale string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", siteURL(), url.QueryEscape(token))
	t := pickTemplate(verificationTemplates, locale)
	return SendEmail(to, t.subject, fmt.Sprintf(t.body, link))
}

// SendResetPasswordEmail mails the plaintext reset token.
func SendResetPasswordEmail(to, token, locale string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", siteURL(), url.QueryEscape(token))
	t := pickTemplate(resetTemplates, locale)
	return SendEmail(to, t.subject, fmt.Sprintf(t.body, link))
}

func SendEmail(to, subject, body string) error {
	cfg, err := loadSMTP()
	if err != nil {
		return err
	}

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	msg := []byte("From: \"WatchListy\" <" + cfg.User + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n")

	conn, err := net.DialTimeout("tcp", addr, mailTimeout)
	if err != nil {
		return mailError(err)
	}
	// One deadline for the whole transaction, greeting included.
	if err := conn.SetDeadline(time.Now().Add(mailTimeout)); err != nil {
		conn.Close()
		return err
	}
	if cfg.Port == "465" {
		conn = tls.Client(conn, &tls.Config{ServerName: cfg.Host})
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return mailError(err)
	}
	defer c.Close()

	if cfg.Port != "465" {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				return mailError(err)
			}
		}
	}
	if err := c.Auth(auth); err != nil {
		return mailError(err)
	}
	if err := c.Mail(cfg.From); err != nil {
		return mailError(err)
	}
	if err := c.Rcpt(to); err != nil {
		return mailError(err)
	}
	wc, err := c.Data()
	if err != nil {
		return mailError(err)
	}
	if _, err := wc.Write(msg); err != nil {
		return mailError(err)
	}
	if err := wc.Close(); err != nil {
		return mailError(err)
	}
	return c.Quit()
}
