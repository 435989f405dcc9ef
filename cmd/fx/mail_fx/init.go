package mail_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"studymate/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.MailServiceInterface {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	cfg := services.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: "StudyMate",
		UseSSL:   port == 465,

		AppName:    "StudyMate",
		AppBaseURL: os.Getenv("APP_BASE_URL"),
	}

	return services.NewSMTPMailService(cfg)
}
