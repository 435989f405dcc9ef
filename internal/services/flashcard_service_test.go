package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"studymate/pkg/utils"
)

const fencedDeck = "```json\n[{\"question\":\"What is a stack?\",\"answer\":\"LIFO structure\"},{\"question\":\"\",\"answer\":\"orphan\"},{\"question\":\"What is a queue?\",\"answer\":\"FIFO structure\"}]\n```"

func TestGenerateFlashcardsHappyPath(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	repo := &stubContentRepo{}
	chat := &stubChat{responses: []string{fencedDeck, "Data Structures"}}
	svc := NewFlashcardService(entitlement, repo, chat, newTestRecents())

	deck, err := svc.GenerateFlashcards(context.Background(), uuid.NewString(), "a transcript about stacks and queues")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deck.Cards) != 2 {
		t.Fatalf("got %d cards, want 2 (blank question dropped)", len(deck.Cards))
	}
	if deck.Cards[0].Question != "What is a stack?" {
		t.Errorf("unexpected first card: %+v", deck.Cards[0])
	}
	if deck.Title != "Data Structures" {
		t.Errorf("title = %q", deck.Title)
	}
	if len(entitlement.increments) != 1 {
		t.Errorf("expected one usage increment, got %d", len(entitlement.increments))
	}
	if len(repo.inserted) != 1 {
		t.Errorf("expected one persisted deck, got %d", len(repo.inserted))
	}
}

func TestGenerateFlashcardsDeniedAtLimit(t *testing.T) {
	chat := &stubChat{responses: []string{fencedDeck}}
	svc := NewFlashcardService(&stubEntitlement{allow: false}, &stubContentRepo{}, chat, newTestRecents())

	_, err := svc.GenerateFlashcards(context.Background(), uuid.NewString(), "transcript")
	if !errors.Is(err, utils.ErrUsageLimitReached) {
		t.Fatalf("error = %v, want ErrUsageLimitReached", err)
	}
	if chat.calls != 0 {
		t.Error("denied request must not reach the model")
	}
}

func TestGenerateFlashcardsFailedModelLeavesQuotaAlone(t *testing.T) {
	tests := []struct {
		name string
		chat *stubChat
	}{
		{"model error", &stubChat{err: errors.New("timeout")}},
		{"unparseable output", &stubChat{responses: []string{"I'm sorry, I can't do that"}}},
		{"empty array", &stubChat{responses: []string{"[]"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entitlement := &stubEntitlement{allow: true}
			svc := NewFlashcardService(entitlement, &stubContentRepo{}, tt.chat, newTestRecents())

			_, err := svc.GenerateFlashcards(context.Background(), uuid.NewString(), "transcript")
			if !errors.Is(err, utils.ErrUpstreamFailure) {
				t.Fatalf("error = %v, want ErrUpstreamFailure", err)
			}
			if len(entitlement.increments) != 0 {
				t.Error("failed generation must not consume quota")
			}
		})
	}
}

func TestGenerateFlashcardsTitleFallback(t *testing.T) {
	// First call returns the deck, second (title) keeps failing.
	chat := &stubChat{responses: []string{`[{"question":"q","answer":"a"}]`, "   "}}
	svc := NewFlashcardService(&stubEntitlement{allow: true}, &stubContentRepo{}, chat, newTestRecents())

	deck, err := svc.GenerateFlashcards(context.Background(), uuid.NewString(), "transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deck.Title != "Flashcard Deck" {
		t.Errorf("title = %q, want fallback", deck.Title)
	}
}

func TestRecentDecksPerUser(t *testing.T) {
	chat := &stubChat{responses: []string{`[{"question":"q","answer":"a"}]`, "Deck"}}
	svc := NewFlashcardService(&stubEntitlement{allow: true}, &stubContentRepo{}, chat, newTestRecents())

	userID := uuid.NewString()
	if _, err := svc.GenerateFlashcards(context.Background(), userID, "transcript"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(svc.RecentDecks(context.Background(), userID)); got != 1 {
		t.Errorf("got %d recent decks, want 1", got)
	}
	if got := len(svc.RecentDecks(context.Background(), uuid.NewString())); got != 0 {
		t.Errorf("other users should see an empty list, got %d", got)
	}
}
