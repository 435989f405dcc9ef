package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"studymate/internal/models/request_models"
	"studymate/internal/services"
	"studymate/pkg/utils"
)

type FlashcardController struct {
	flashcardService services.FlashcardServiceInterface
}

func NewFlashcardController(flashcardService services.FlashcardServiceInterface) *FlashcardController {
	return &FlashcardController{
		flashcardService: flashcardService,
	}
}

// GenerateFlashcards godoc
// @Summary Generate a flashcard deck from a transcript
// @Tags Flashcards
// @Accept json
// @Produce json
// @Param request body request_models.GenerateFlashcardsRequest true "Flashcard generation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /flashcards/generate [post]
func (f *FlashcardController) GenerateFlashcards(c *gin.Context) {
	var req request_models.GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	deck, err := f.flashcardService.GenerateFlashcards(c.Request.Context(), userID, req.Transcript)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, deck, "Flashcards generated successfully")
}

// RecentDecks godoc
// @Summary List recently generated flashcard decks
// @Tags Flashcards
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /flashcards/recent [get]
func (f *FlashcardController) RecentDecks(c *gin.Context) {
	userID := c.GetString("user_id")
	items := f.flashcardService.RecentDecks(c.Request.Context(), userID)
	utils.RespondSuccess(c, items, "Recent decks fetched successfully")
}
