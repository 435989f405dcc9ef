package response_models

type HumanizeResult struct {
	ImprovedText string `json:"improved_text"`
	Style        string `json:"style"`
}
