package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"studymate/internal/models/db_models"
	"studymate/internal/models/response_models"
	"studymate/internal/repositories"
	"studymate/pkg/utils"
)

// EntitlementServiceInterface gates the metered AI features. The contract
// every feature handler follows is: CheckUsageLimit, do the expensive work,
// then IncrementUsage only if the work succeeded. A failed generation never
// consumes quota; the cost is a narrow window where concurrent requests can
// both pass the check before either increments.
type EntitlementServiceInterface interface {
	CheckUsageLimit(ctx context.Context, userID string, feature db_models.Feature) bool
	IncrementUsage(ctx context.Context, userID string, feature db_models.Feature)
	GetUserUsage(ctx context.Context, userID string) (response_models.UsageReport, error)
	UpdateTier(ctx context.Context, userID string, tier db_models.Tier, reason string) error
}

type EntitlementService struct {
	subRepo     repositories.SubscriptionRepository
	usageRepo   repositories.UsageRepository
	historyRepo repositories.TierHistoryRepository

	// failOpen controls what a read error during the check means: allow
	// (availability over enforcement) or deny. Set from
	// ENTITLEMENT_FAIL_OPEN at wiring time.
	failOpen bool
}

func NewEntitlementService(
	subRepo repositories.SubscriptionRepository,
	usageRepo repositories.UsageRepository,
	historyRepo repositories.TierHistoryRepository,
	failOpen bool,
) EntitlementServiceInterface {
	return &EntitlementService{
		subRepo:     subRepo,
		usageRepo:   usageRepo,
		historyRepo: historyRepo,
		failOpen:    failOpen,
	}
}

// resolveTier looks up the user's tier, lazily inserting a free-tier row the
// first time. The second return value is false when the lookup failed and
// the failure policy should decide.
func (e *EntitlementService) resolveTier(ctx context.Context, userID uuid.UUID) (db_models.Tier, bool) {
	sub, err := e.subRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Printf("entitlement: subscription lookup failed for %s: %v", userID, err)
		return db_models.TierFree, false
	}
	if sub == nil {
		if err := e.subRepo.CreateDefault(ctx, userID); err != nil {
			log.Printf("entitlement: default subscription insert failed for %s: %v", userID, err)
		}
		return db_models.TierFree, true
	}
	return sub.Tier, true
}

func (e *EntitlementService) CheckUsageLimit(ctx context.Context, userID string, feature db_models.Feature) bool {
	// No identified user means no quota to spend. Metered features always
	// sit behind auth; an empty id here is a caller bug, not a free pass.
	uid, err := uuid.Parse(userID)
	if userID == "" || err != nil {
		return false
	}

	tier, ok := e.resolveTier(ctx, uid)
	if !ok {
		return e.failOpen
	}

	usage, err := e.usageRepo.FindByUser(ctx, uid)
	if err != nil {
		log.Printf("entitlement: usage lookup failed for %s: %v", uid, err)
		return e.failOpen
	}
	if usage == nil {
		if err := e.usageRepo.CreateDefault(ctx, uid); err != nil {
			log.Printf("entitlement: default usage insert failed for %s: %v", uid, err)
		}
		// Fresh row, nothing consumed yet.
		return true
	}

	return usage.CountFor(feature) < db_models.LimitFor(tier, feature)
}

// IncrementUsage records one unit of consumption. Called only after the
// gated action succeeded. Errors are logged and swallowed: a failed
// increment must never surface to the user who already got their result.
func (e *EntitlementService) IncrementUsage(ctx context.Context, userID string, feature db_models.Feature) {
	uid, err := uuid.Parse(userID)
	if userID == "" || err != nil {
		log.Printf("entitlement: no user id provided for usage tracking")
		return
	}

	tier, _ := e.resolveTier(ctx, uid)
	limit := db_models.LimitFor(tier, feature)

	applied, err := e.usageRepo.CheckAndIncrement(ctx, uid, feature, limit)
	if err != nil {
		log.Printf("entitlement: increment failed for %s/%s: %v", uid, feature, err)
		return
	}
	if !applied {
		// Either the row is missing or a concurrent request consumed the
		// last unit between our check and now. Both are fine to drop.
		log.Printf("entitlement: increment not applied for %s/%s (at limit or no row)", uid, feature)
	}
}

func (e *EntitlementService) GetUserUsage(ctx context.Context, userID string) (response_models.UsageReport, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return response_models.UsageReport{}, utils.ErrUnauthorized
	}

	sub, err := e.subRepo.FindByUser(ctx, uid)
	if err != nil {
		return response_models.UsageReport{}, utils.ErrDatabaseError
	}
	tier := db_models.TierFree
	if sub != nil {
		tier = sub.Tier
	}

	usage, err := e.usageRepo.FindByUser(ctx, uid)
	if err != nil {
		return response_models.UsageReport{}, utils.ErrDatabaseError
	}
	if usage == nil {
		usage = &db_models.UsageCounter{}
	}

	report := response_models.UsageReport{
		Tier: string(tier),
		Usage: map[string]int{
			string(db_models.FeatureVideoSummaries):    usage.VideoSummariesCount,
			string(db_models.FeatureFlashcardSets):     usage.FlashcardSetsCount,
			string(db_models.FeatureTextHumanizations): usage.TextHumanizationsCount,
		},
		Limits: map[string]int{
			string(db_models.FeatureVideoSummaries):    db_models.LimitFor(tier, db_models.FeatureVideoSummaries),
			string(db_models.FeatureFlashcardSets):     db_models.LimitFor(tier, db_models.FeatureFlashcardSets),
			string(db_models.FeatureTextHumanizations): db_models.LimitFor(tier, db_models.FeatureTextHumanizations),
		},
	}

	history, err := e.historyRepo.ListByUser(ctx, uid)
	if err != nil {
		log.Printf("entitlement: tier history lookup failed for %s: %v", uid, err)
		return report, nil
	}
	for _, h := range history {
		report.History = append(report.History, response_models.TierHistoryRecord{
			Tier:         string(h.Tier),
			StartDate:    h.StartDate,
			EndDate:      h.EndDate,
			DurationDays: h.DurationDays,
			IsCurrent:    h.IsCurrent,
			ChangeReason: h.ChangeReason,
		})
	}

	return report, nil
}

func (e *EntitlementService) UpdateTier(ctx context.Context, userID string, tier db_models.Tier, reason string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return utils.ErrUnauthorized
	}
	if !db_models.ValidTier(tier) {
		return utils.ErrInvalidTier
	}

	if err := e.subRepo.UpsertTier(ctx, uid, tier); err != nil {
		return utils.ErrDatabaseError
	}

	if err := e.historyRepo.RecordChange(ctx, uid, tier, reason); err != nil {
		// The tier itself changed; a missing history row is a display gap,
		// not a reason to fail the request.
		log.Printf("entitlement: tier history append failed for %s: %v", uid, err)
	}

	return nil
}
