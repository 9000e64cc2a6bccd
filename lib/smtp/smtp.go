package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		addr:       host + ":" + port,
		tlsEnabled: tlsEnabled,
		configured: user != "" && host != "" && port != "",
	}
	return nil
}

type impl struct {
	user       string
	password   string
	addr       string
	tlsEnabled bool
	configured bool
}

func (i impl) SendEMail(from, to, message, subject string) error {
	logger := log.WithField("sender", from).WithField("recipient", to)
	if !i.configured {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(from, subject, message))

	var err error
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.addr, auth, i.user, []string{to}, body)
	} else {
		err = smtp.SendMail(i.addr, auth, i.user, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, subject, message string) string {
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	return fmt.Sprintf("Subject: %s\n%s\r\n Отправитель: %s\r\n %s\r\n", subject, mimeHeaders, from, message)
}
