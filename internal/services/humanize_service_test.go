package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"studymate/pkg/utils"
)

func TestHumanizeTextHappyPath(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	chat := &stubChat{responses: []string{"rewritten text"}}
	svc := NewHumanizeService(entitlement, chat)

	result, err := svc.HumanizeText(context.Background(), uuid.NewString(), "robotic input", "casual")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ImprovedText != "rewritten text" {
		t.Errorf("improved text = %q", result.ImprovedText)
	}
	if result.Style != "casual" {
		t.Errorf("style = %q", result.Style)
	}
	// Two rounds of three passes each.
	if chat.calls != 6 {
		t.Errorf("model called %d times, want 6", chat.calls)
	}
	if len(entitlement.increments) != 1 {
		t.Errorf("expected one usage increment, got %d", len(entitlement.increments))
	}
}

func TestHumanizeTextDefaultsToBalanced(t *testing.T) {
	chat := &stubChat{responses: []string{"out"}}
	svc := NewHumanizeService(&stubEntitlement{allow: true}, chat)

	result, err := svc.HumanizeText(context.Background(), uuid.NewString(), "input", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Style != "balanced" {
		t.Errorf("style = %q, want balanced", result.Style)
	}
}

func TestHumanizeTextRejectsUnknownStyle(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	svc := NewHumanizeService(entitlement, &stubChat{responses: []string{"out"}})

	_, err := svc.HumanizeText(context.Background(), uuid.NewString(), "input", "sarcastic")
	if !errors.Is(err, utils.ErrInvalidStyle) {
		t.Fatalf("error = %v, want ErrInvalidStyle", err)
	}
	if len(entitlement.increments) != 0 {
		t.Error("rejected request must not consume quota")
	}
}

func TestHumanizeTextDeniedAtLimit(t *testing.T) {
	chat := &stubChat{responses: []string{"out"}}
	svc := NewHumanizeService(&stubEntitlement{allow: false}, chat)

	_, err := svc.HumanizeText(context.Background(), uuid.NewString(), "input", "academic")
	if !errors.Is(err, utils.ErrUsageLimitReached) {
		t.Fatalf("error = %v, want ErrUsageLimitReached", err)
	}
	if chat.calls != 0 {
		t.Error("denied request must not reach the model")
	}
}

func TestHumanizeTextStripsChattyLeadIns(t *testing.T) {
	chat := &stubChat{responses: []string{"Sure, here's the rewrite:\nthe actual text"}}
	svc := NewHumanizeService(&stubEntitlement{allow: true}, chat)

	result, err := svc.HumanizeText(context.Background(), uuid.NewString(), "input", "professional")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ImprovedText != "the actual text" {
		t.Errorf("improved text = %q, lead-in not stripped", result.ImprovedText)
	}
}

func TestHumanizeTextAllPassesFail(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	svc := NewHumanizeService(entitlement, &stubChat{err: errors.New("overloaded")})

	_, err := svc.HumanizeText(context.Background(), uuid.NewString(), "input", "creative")
	if !errors.Is(err, utils.ErrUpstreamFailure) {
		t.Fatalf("error = %v, want ErrUpstreamFailure", err)
	}
	if len(entitlement.increments) != 0 {
		t.Error("failed rewriting must not consume quota")
	}
}

func TestHumanizeTextSurvivesPartialFailures(t *testing.T) {
	// Only the first pass produces usable text; the rest come back blank.
	// The result is the last good output and the unit is still consumed.
	chat := &stubChat{responses: []string{"good output", "   "}}
	svc := NewHumanizeService(&stubEntitlement{allow: true}, chat)

	first, err := svc.HumanizeText(context.Background(), uuid.NewString(), "input", "balanced")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ImprovedText != "good output" {
		t.Errorf("improved text = %q", first.ImprovedText)
	}
}
