package response_models

import "github.com/google/uuid"

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type DeckResult struct {
	ID    uuid.UUID   `json:"id"`
	Title string      `json:"title"`
	Cards []Flashcard `json:"cards"`
}
