package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"studymate/cmd/fx/account_fx"
	"studymate/cmd/fx/db_fx"
	"studymate/cmd/fx/entitlement_fx"
	"studymate/cmd/fx/flashcard_fx"
	"studymate/cmd/fx/humanize_fx"
	"studymate/cmd/fx/lecture_fx"
	"studymate/cmd/fx/llm_fx"
	"studymate/cmd/fx/mail_fx"
	"studymate/cmd/fx/memcache_fx"
	"studymate/cmd/fx/newsletter_fx"
	"studymate/cmd/fx/payment_fx"
	"studymate/cmd/fx/plan_fx"
	"studymate/cmd/fx/transcript_fx"
	"studymate/internal/api/controllers"
	"studymate/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment variables")
	}

	app := fx.New(
		db_fx.Module,
		llm_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		entitlement_fx.Module,
		transcript_fx.Module,
		lecture_fx.Module,
		flashcard_fx.Module,
		humanize_fx.Module,
		plan_fx.Module,
		payment_fx.Module,
		newsletter_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	usageController *controllers.UsageController,
	lectureController *controllers.LectureController,
	flashcardController *controllers.FlashcardController,
	humanizeController *controllers.HumanizeController,
	paymentController *controllers.PaymentController,
	newsletterController *controllers.NewsletterController,
) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController,
		usageController,
		lectureController,
		flashcardController,
		humanizeController,
		paymentController,
		newsletterController,
	)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	usageController *controllers.UsageController,
	lectureController *controllers.LectureController,
	flashcardController *controllers.FlashcardController,
	humanizeController *controllers.HumanizeController,
	paymentController *controllers.PaymentController,
	newsletterController *controllers.NewsletterController,
) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/forgot-password", accountController.ForgotPassword)
	accounts.POST("/reset-password", accountController.ResetPassword)

	r.GET("/plans", paymentController.ListPlans)
	r.POST("/payments/webhook", paymentController.HandleWebhook)
	r.POST("/newsletter/subscribe", newsletterController.Subscribe)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())

	authed.GET("/usage", usageController.GetUsage)
	authed.POST("/usage/tier", usageController.UpdateTier)

	authed.POST("/lectures/process", lectureController.ProcessVideo)
	authed.GET("/lectures/recent", lectureController.RecentLectures)
	authed.POST("/lectures/search", lectureController.SearchLectures)

	authed.POST("/flashcards/generate", flashcardController.GenerateFlashcards)
	authed.GET("/flashcards/recent", flashcardController.RecentDecks)

	authed.POST("/humanize", humanizeController.HumanizeText)

	authed.POST("/payments/checkout", paymentController.CreateCheckout)
}
