package payment_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"studymate/internal/api/controllers"
	"studymate/internal/repositories"
	"studymate/internal/services"
)

var Module = fx.Provide(
	providePaymentService, providePaymentController)

func providePaymentService(
	db *gorm.DB,
	planRepo repositories.IPlanRepository,
	entitlement services.EntitlementServiceInterface,
) services.PaymentServiceInterface {
	cfg := services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("PAYOS_RETURN_URL"),
		CancelURL:    os.Getenv("PAYOS_CANCEL_URL"),
		ProviderName: "payos",
	}

	instance, err := services.NewPaymentService(db, planRepo, entitlement, cfg)
	if err != nil {
		log.Printf("Error initializing PaymentService: %v", err)
	}
	return instance
}

func providePaymentController(
	paymentService services.PaymentServiceInterface,
	planService services.PlanServiceInterface,
) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService, planService)
}
