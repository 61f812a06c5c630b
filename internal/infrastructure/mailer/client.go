package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Client sends plaintext summary mails over SMTP with STARTTLS.
// Left unconfigured it reports disabled and every send is a no-op.
type Client struct {
	host     string
	port     int
	username string
	password string
	to       []string
}

func NewClient(host string, port int, username, password, to string) *Client {
	c := &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			c.to = append(c.to, addr)
		}
	}
	return c
}

func (c *Client) IsEnabled() bool {
	return c.username != "" && c.password != "" && len(c.to) > 0
}

func (c *Client) Send(subject, body string) error {
	if !c.IsEnabled() {
		return fmt.Errorf("mailer not configured")
	}

	msg := strings.Builder{}
	fmt.Fprintf(&msg, "From: %s\r\n", c.username)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(c.to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	auth := smtp.PlainAuth("", c.username, c.password, c.host)
	return smtp.SendMail(addr, auth, c.username, c.to, []byte(msg.String()))
}
