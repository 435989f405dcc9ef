package request_models

type ProcessVideoRequest struct {
	URL string `json:"url" binding:"required"`
}

type SearchLecturesRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}
