package services

import (
	"context"
	"log"
	"time"

	"studymate/internal/models/db_models"
	"studymate/internal/models/request_models"
	"studymate/internal/models/response_models"
	"studymate/internal/repositories"
	"studymate/pkg/memcache"
	"studymate/pkg/utils"
)

const resetTokenTTL = 30 * time.Minute

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	subRepo     repositories.SubscriptionRepository
	mail        MailServiceInterface
	resetTokens memcache.ResetTokenStore
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	subRepo repositories.SubscriptionRepository,
	mail MailServiceInterface,
	resetTokens memcache.ResetTokenStore,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		subRepo:     subRepo,
		mail:        mail,
		resetTokens: resetTokens,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashed,
		Role:         "user",
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	// Seed the free-tier subscription now so the first gated request
	// doesn't have to.
	if err := a.subRepo.CreateDefault(ctx, account.ID); err != nil {
		log.Printf("account: default subscription insert failed for %s: %v", account.ID, err)
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	tier := db_models.TierFree
	if sub, err := a.subRepo.FindByUser(ctx, account.ID); err == nil && sub != nil {
		tier = sub.Tier
	}

	return &response_models.LoginResponse{
		Token: token,
		Tier:  string(tier),
	}, nil
}

// ForgotPassword succeeds even for unknown addresses so the endpoint can't
// be used to probe which emails are registered.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mail.SendPasswordReset(account.Email, token); err != nil {
		log.Printf("account: reset mail delivery failed for %s: %v", account.Email, err)
		return utils.ErrUpstreamFailure
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email := a.resetTokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePassword(ctx, email, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
