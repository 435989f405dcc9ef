package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"studymate/internal/models/db_models"
	"studymate/internal/models/response_models"
	"studymate/internal/repositories"
	"studymate/pkg/memcache"
	"studymate/pkg/utils"
)

const flashcardSystemPrompt = `You are a study-aid generator. Given a lecture transcript, produce flashcards covering the key facts and concepts. Respond with ONLY a JSON array, no prose, where every element is {"question": "...", "answer": "..."}. Aim for 10-20 cards. Questions must be answerable from the transcript alone.`

const deckTitleSystemPrompt = `Generate a short title (at most 6 words) for a flashcard deck based on the first few cards. Respond with the title only.`

type FlashcardServiceInterface interface {
	GenerateFlashcards(ctx context.Context, userID string, transcript string) (*response_models.DeckResult, error)
	RecentDecks(ctx context.Context, userID string) []response_models.RecentItemResponse
}

type flashcardService struct {
	entitlement EntitlementServiceInterface
	contentRepo repositories.ContentRepository
	chat        utils.ChatClientInterface
	recents     memcache.RecentItemStore
}

func NewFlashcardService(
	entitlement EntitlementServiceInterface,
	contentRepo repositories.ContentRepository,
	chat utils.ChatClientInterface,
	recents memcache.RecentItemStore,
) FlashcardServiceInterface {
	return &flashcardService{
		entitlement: entitlement,
		contentRepo: contentRepo,
		chat:        chat,
		recents:     recents,
	}
}

type deckContent struct {
	Cards []response_models.Flashcard `json:"cards"`
}

func (f *flashcardService) GenerateFlashcards(ctx context.Context, userID string, transcript string) (*response_models.DeckResult, error) {
	if !f.entitlement.CheckUsageLimit(ctx, userID, db_models.FeatureFlashcardSets) {
		return nil, utils.ErrUsageLimitReached
	}

	raw, err := f.chat.Complete(ctx, flashcardSystemPrompt, transcript, utils.ChatOptions{
		Temperature: 0.4,
	})
	if err != nil {
		log.Printf("flashcards: generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	cards, err := parseFlashcards(raw)
	if err != nil {
		log.Printf("flashcards: unparseable model output: %v", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	title := f.resolveDeckTitle(ctx, cards)

	f.entitlement.IncrementUsage(ctx, userID, db_models.FeatureFlashcardSets)

	record, err := f.persistDeck(ctx, userID, title, cards)
	if err != nil {
		log.Printf("flashcards: persist failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	f.recents.Add(userID, memcache.RecentItem{ID: record.ID.String(), Title: title})

	return &response_models.DeckResult{
		ID:    record.ID,
		Title: title,
		Cards: cards,
	}, nil
}

// parseFlashcards tolerates fenced or chatty model output by extracting the
// first JSON array before unmarshalling.
func parseFlashcards(raw string) ([]response_models.Flashcard, error) {
	cleaned := utils.ExtractJSON(raw)

	var cards []response_models.Flashcard
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		return nil, err
	}

	kept := cards[:0]
	for _, c := range cards {
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("model returned no usable cards")
	}
	return kept, nil
}

func (f *flashcardService) resolveDeckTitle(ctx context.Context, cards []response_models.Flashcard) string {
	sample := cards
	if len(sample) > 3 {
		sample = sample[:3]
	}
	var sb strings.Builder
	for _, c := range sample {
		sb.WriteString(c.Question)
		sb.WriteString("\n")
	}

	title, err := f.chat.Complete(ctx, deckTitleSystemPrompt, sb.String(), utils.ChatOptions{
		Temperature: 0.7,
		MaxTokens:   24,
	})
	if err != nil {
		log.Printf("flashcards: title generation failed: %v", err)
		return "Flashcard Deck"
	}
	title = strings.Trim(strings.TrimSpace(title), `"`)
	if title == "" {
		return "Flashcard Deck"
	}
	return title
}

func (f *flashcardService) persistDeck(ctx context.Context, userID, title string, cards []response_models.Flashcard) (*db_models.ContentRecord, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	content, err := json.Marshal(deckContent{Cards: cards})
	if err != nil {
		return nil, err
	}

	record := &db_models.ContentRecord{
		UserID:  uid,
		Type:    db_models.ContentTypeFlashcards,
		Title:   title,
		Content: content,
	}
	if err := f.contentRepo.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (f *flashcardService) RecentDecks(ctx context.Context, userID string) []response_models.RecentItemResponse {
	items := f.recents.List(userID)
	out := make([]response_models.RecentItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, response_models.RecentItemResponse{
			ID:      it.ID,
			Title:   it.Title,
			AddedAt: it.AddedAt.Unix(),
		})
	}
	if len(out) > 0 {
		return out
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return out
	}
	records, err := f.contentRepo.ListByUser(ctx, uid, db_models.ContentTypeFlashcards, 5)
	if err != nil {
		log.Printf("flashcards: recent fallback query failed for %s: %v", uid, err)
		return out
	}
	for _, r := range records {
		out = append(out, response_models.RecentItemResponse{
			ID:      r.ID.String(),
			Title:   r.Title,
			AddedAt: r.CreatedAt,
		})
	}
	return out
}
