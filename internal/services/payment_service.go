package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"
	"gorm.io/gorm"
	"studymate/internal/models/db_models"
	"studymate/internal/models/response_models"
	"studymate/internal/repositories"
	"studymate/pkg/utils"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string
	ReturnURL    string
	CancelURL    string
	ProviderName string
}

type PaymentServiceInterface interface {
	CreateCheckoutForPlan(ctx context.Context, userID string, planCode string) (*response_models.CreateCheckoutResponse, error)
	HandleWebhook(ctx context.Context, rawBody []byte) error
}

type paymentService struct {
	db          *gorm.DB
	planRepo    repositories.IPlanRepository
	entitlement EntitlementServiceInterface
	cfg         PayOSConfig
}

func NewPaymentService(
	db *gorm.DB,
	planRepo repositories.IPlanRepository,
	entitlement EntitlementServiceInterface,
	cfg PayOSConfig,
) (PaymentServiceInterface, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}
	if err := payos.Key(cfg.ClientID, cfg.ApiKey, cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	return &paymentService{
		db:          db,
		planRepo:    planRepo,
		entitlement: entitlement,
		cfg:         cfg,
	}, nil
}

type txnMetadata struct {
	PlanCode string `json:"plan_code"`
	PlanTier string `json:"plan_tier"`
}

func (p *paymentService) CreateCheckoutForPlan(ctx context.Context, userID string, planCode string) (*response_models.CreateCheckoutResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	plan, err := p.planRepo.GetPlanByCode(ctx, planCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil || plan.PriceMinor <= 0 {
		return nil, utils.ErrPlanNotFound
	}

	// payOS wants an int64 order code; unix seconds plus a random suffix
	// keeps it unique enough and under the 13-digit cap.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	meta, _ := json.Marshal(txnMetadata{PlanCode: plan.Code, PlanTier: string(plan.Tier)})
	txn := &db_models.Transaction{
		UserID:        uid,
		AmountMinor:   plan.PriceMinor,
		Currency:      plan.Currency,
		Status:        db_models.TxnStatusPending,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: fmt.Sprintf("payos:%d", orderCode),
		Metadata:      meta,
	}
	if err := p.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp, err := payos.CreatePaymentLink(payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      int(plan.PriceMinor),
		Description: fmt.Sprintf("Subscription %s", plan.Code),
		Items: []payos.Item{{
			Name:     fmt.Sprintf("%s (%s)", plan.Name, plan.Code),
			Price:    int(plan.PriceMinor),
			Quantity: 1,
		}},
		CancelUrl: p.cfg.CancelURL,
		ReturnUrl: p.cfg.ReturnURL,
	})
	if err != nil {
		_ = p.db.WithContext(ctx).Model(txn).Update("status", db_models.TxnStatusFailed).Error
		return nil, fmt.Errorf("%w: payos create link: %v", utils.ErrUpstreamFailure, err)
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		Amount:       plan.PriceMinor,
		PaymentURL:   resp.CheckoutUrl,
		ProviderName: p.cfg.ProviderName,
	}, nil
}

// HandleWebhook verifies the provider signature, marks the transaction paid
// exactly once, and upgrades the user's tier. A transaction we don't know is
// acked silently so the provider doesn't retry forever.
func (p *paymentService) HandleWebhook(ctx context.Context, rawBody []byte) error {
	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return fmt.Errorf("invalid webhook payload: %w", err)
	}

	data, err := payos.VerifyPaymentWebhookData(body)
	if err != nil {
		return fmt.Errorf("webhook verification failed: %w", err)
	}

	// payOS sends order code 123 when confirming the webhook URL.
	if data.OrderCode == 123 {
		return nil
	}

	providerTxn := fmt.Sprintf("payos:%d", data.OrderCode)
	var txn db_models.Transaction
	if err := p.db.WithContext(ctx).Where("provider_txn_id = ?", providerTxn).First(&txn).Error; err != nil {
		log.Printf("payment: webhook for unknown order %d", data.OrderCode)
		return nil
	}

	if txn.Status == db_models.TxnStatusPaid {
		return nil
	}

	now := time.Now().Unix()
	if err := p.db.WithContext(ctx).Model(&txn).Updates(map[string]interface{}{
		"status":  db_models.TxnStatusPaid,
		"paid_at": now,
	}).Error; err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	var meta txnMetadata
	if err := json.Unmarshal(txn.Metadata, &meta); err != nil || meta.PlanTier == "" {
		log.Printf("payment: transaction %s has no plan metadata, tier unchanged", txn.ID)
		return nil
	}

	if err := p.entitlement.UpdateTier(ctx, txn.UserID.String(), db_models.Tier(meta.PlanTier), "payment:"+meta.PlanCode); err != nil {
		return fmt.Errorf("apply tier after payment: %w", err)
	}
	return nil
}
