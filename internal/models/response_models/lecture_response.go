package response_models

import "github.com/google/uuid"

type LectureResult struct {
	ID         uuid.UUID           `json:"id"`
	VideoID    string              `json:"video_id"`
	Title      string              `json:"title"`
	Summary    string              `json:"summary"`
	Transcript []TranscriptSegment `json:"transcript"`
	Duration   float64             `json:"duration"`
}

type RecentItemResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	AddedAt int64  `json:"added_at"`
}

type LectureSearchHit struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
}
