package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"studymate/internal/models/db_models"
	"studymate/internal/models/response_models"
	"studymate/pkg/utils"
)

// Style prompts for the rewriting pipeline. "balanced" is the default when
// the request leaves style empty.
var humanizeStylePrompts = map[string]string{
	"casual":       "Rewrite in a relaxed, conversational tone, like explaining to a friend. Contractions are fine.",
	"professional": "Rewrite in a polished, workplace-appropriate tone. Clear and direct, no slang.",
	"academic":     "Rewrite in a formal academic register with precise vocabulary and measured claims.",
	"creative":     "Rewrite with vivid, varied phrasing and an engaging voice.",
	"balanced":     "Rewrite in a natural, neutral tone suitable for general audiences.",
}

const humanizeRounds = 2

type HumanizeServiceInterface interface {
	HumanizeText(ctx context.Context, userID string, text string, style string) (*response_models.HumanizeResult, error)
}

type humanizeService struct {
	entitlement EntitlementServiceInterface
	chat        utils.ChatClientInterface
}

func NewHumanizeService(entitlement EntitlementServiceInterface, chat utils.ChatClientInterface) HumanizeServiceInterface {
	return &humanizeService{entitlement: entitlement, chat: chat}
}

// HumanizeText runs the text through repeated paraphrase / naturalize /
// imperfection passes. Each pass feeds the previous pass's output; a pass
// that fails or returns nothing keeps the text from the pass before it.
func (h *humanizeService) HumanizeText(ctx context.Context, userID string, text string, style string) (*response_models.HumanizeResult, error) {
	if style == "" {
		style = "balanced"
	}
	styleInstruction, ok := humanizeStylePrompts[style]
	if !ok {
		return nil, utils.ErrInvalidStyle
	}

	if !h.entitlement.CheckUsageLimit(ctx, userID, db_models.FeatureTextHumanizations) {
		return nil, utils.ErrUsageLimitReached
	}

	passes := []struct {
		name   string
		system string
	}{
		{
			name:   "paraphrase",
			system: "You rewrite text so it keeps the exact meaning but uses different sentence structures and word choices. " + styleInstruction + " Respond with the rewritten text only.",
		},
		{
			name:   "naturalize",
			system: "You make text sound like a person wrote it: vary sentence length, prefer everyday words over formal synonyms, remove robotic transitions. " + styleInstruction + " Respond with the rewritten text only.",
		},
		{
			name:   "imperfect",
			system: "You add the small irregularities of real writing: an occasional short sentence, a mild aside, slightly uneven rhythm. Do not change the meaning. Respond with the rewritten text only.",
		},
	}

	current := text
	completed := 0
	for round := 0; round < humanizeRounds; round++ {
		for _, pass := range passes {
			out, err := h.chat.Complete(ctx, pass.system, current, utils.ChatOptions{
				Temperature:      0.9,
				PresencePenalty:  0.5,
				FrequencyPenalty: 0.5,
			})
			if err != nil {
				log.Printf("humanize: %s pass failed on round %d: %v", pass.name, round+1, err)
				continue
			}
			out = strings.TrimSpace(utils.StripLeadIn(out))
			if out == "" {
				continue
			}
			current = out
			completed++
		}
	}

	if completed == 0 {
		return nil, fmt.Errorf("%w: all rewriting passes failed", utils.ErrUpstreamFailure)
	}

	h.entitlement.IncrementUsage(ctx, userID, db_models.FeatureTextHumanizations)

	return &response_models.HumanizeResult{
		ImprovedText: current,
		Style:        style,
	}, nil
}
