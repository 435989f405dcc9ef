package request_models

type HumanizeRequest struct {
	Text  string `json:"text" binding:"required"`
	Style string `json:"style"`
}
