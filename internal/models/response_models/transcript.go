package response_models

// TranscriptSegment is the normalized caption unit every transcript source
// is converted into, regardless of whether it arrived as JSON events or a
// timedtext XML document.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}
