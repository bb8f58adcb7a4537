// Package mailer formats and delivers application emails.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/amishk599/autoapply/internal/model"
)

// DefaultSMTPAddr is Gmail's submission endpoint.
const DefaultSMTPAddr = "smtp.gmail.com:587"

// Options configures an SMTPSender.
type Options struct {
	User         string // sender address and SMTP login
	Password     string // Gmail app password
	SenderName   string
	PortfolioURL string
	Addr         string // host:port, defaults to DefaultSMTPAddr
	Timeout      time.Duration
}

// deliverFunc hands a composed message to the mail server.
type deliverFunc func(ctx context.Context, from string, to []string, msg []byte) error

// SMTPSender delivers applications over SMTP submission with STARTTLS and
// PLAIN auth.
type SMTPSender struct {
	opts    Options
	deliver deliverFunc
	now     func() time.Time
	logger  *slog.Logger
}

var _ model.Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender. A zero Timeout means 30s.
func NewSMTPSender(opts Options, logger *slog.Logger) *SMTPSender {
	if opts.Addr == "" {
		opts.Addr = DefaultSMTPAddr
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &SMTPSender{opts: opts, now: time.Now, logger: logger}
	s.deliver = s.deliverSMTP
	return s
}

// Send composes and delivers one application. Every failure is logged and
// reported as false.
func (s *SMTPSender) Send(ctx context.Context, to, company, position string) bool {
	if to == "" || s.opts.User == "" || s.opts.Password == "" {
		return false
	}

	content, err := Render(company, position, s.opts.PortfolioURL, s.opts.SenderName)
	if err != nil {
		s.logger.Warn("could not render application", "to", to, "error", err)
		return false
	}
	msg, err := Compose(s.opts.SenderName, s.opts.User, to, content, s.now())
	if err != nil {
		s.logger.Warn("could not compose application", "to", to, "error", err)
		return false
	}
	if err := s.deliver(ctx, s.opts.User, []string{to}, msg); err != nil {
		s.logger.Warn("smtp send failed", "to", to, "error", err)
		return false
	}

	s.logger.Info("sent application", "to", to, "company", company)
	return true
}

// Compose builds a single-part text/plain UTF-8 message.
func Compose(fromName, from, to string, content Content, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{{Name: fromName, Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(content.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message writer: %w", err)
	}
	if _, err := io.WriteString(w, content.Body); err != nil {
		w.Close()
		return nil, fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *SMTPSender) deliverSMTP(ctx context.Context, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(s.opts.Addr)
	if err != nil {
		return fmt.Errorf("smtp address %q: %w", s.opts.Addr, err)
	}

	dialer := net.Dialer{Timeout: s.opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.opts.Addr, err)
	}
	if err := conn.SetDeadline(time.Now().Add(s.opts.Timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("set deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); !ok {
		return errors.New("server does not offer STARTTLS")
	}
	if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", s.opts.User, s.opts.Password, host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end data: %w", err)
	}
	return c.Quit()
}
