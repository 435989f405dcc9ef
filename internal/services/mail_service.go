package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

type MailServiceInterface interface {
	SendPasswordReset(to, token string) error
	SendNotification(to, subject, body string) error
}

// SMTPConfig covers both delivery modes: implicit TLS (usually 465) when
// UseSSL is set, STARTTLS (usually 587) otherwise.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseSSL   bool

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) MailServiceInterface {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(mailTextTemplate)),
	}
}

type mailData struct {
	Title     string
	Body      string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:24px;background:#f1f5f9;font-family:-apple-system,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;color:#0f172a">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:12px;padding:32px;box-shadow:0 4px 16px rgba(0,0,0,0.06)">
    <div style="font-weight:700;font-size:20px;color:#2563eb;margin-bottom:24px">{{.AppName}}</div>
    <h1 style="font-size:22px;margin:0 0 12px">{{.Title}}</h1>
    <p style="line-height:1.6;color:#475569">{{.Body}}</p>
    {{if .ButtonURL}}
    <p style="margin:28px 0">
      <a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#2563eb;color:#ffffff;text-decoration:none;border-radius:8px;font-weight:600">{{.ButtonTxt}}</a>
    </p>
    <p style="font-size:12px;color:#94a3b8;word-break:break-all">If the button doesn't work, open this link: {{.ButtonURL}}</p>
    {{end}}
    <p style="font-size:12px;color:#94a3b8;margin-top:32px">© {{.Year}} {{.AppName}}. All rights reserved.</p>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Body}}

{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}
— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	return s.compose(to, "Reset your password", mailData{
		Title:     "Reset your password",
		Body:      "We received a request to reset your password. Click the button below to continue. If you didn't request this, you can safely ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
	})
}

func (s *smtpMailService) SendNotification(to, subject, body string) error {
	return s.compose(to, subject, mailData{Title: subject, Body: body})
}

func (s *smtpMailService) compose(to, subject string, data mailData) error {
	data.AppName = s.cfg.AppName
	data.Year = time.Now().Year()

	var htmlBuf, textBuf bytes.Buffer
	if err := s.htmlTpl.Execute(&htmlBuf, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&textBuf, data); err != nil {
		return err
	}
	return s.send(to, subject, htmlBuf.String(), textBuf.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	write("--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n\r\n", boundary, textBody)
	write("--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n\r\n", boundary, htmlBody)
	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var client *smtp.Client
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
	} else {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsCfg); err != nil {
				return err
			}
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}
