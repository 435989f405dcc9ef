package request_models

type GenerateFlashcardsRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}
