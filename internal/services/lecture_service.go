package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"studymate/internal/models/db_models"
	"studymate/internal/models/response_models"
	"studymate/internal/repositories"
	"studymate/pkg/memcache"
	"studymate/pkg/utils"
)

const summarizeSystemPrompt = `You are an expert lecture summarizer. Given a raw video transcript, produce a clear, well-structured summary in markdown. Use headings for the main topics, bullet points for key ideas, and keep the student's perspective in mind: what would they need to review before an exam? Do not invent content that is not in the transcript.`

const lectureTitleSystemPrompt = `Generate a short, descriptive title (at most 8 words) for a lecture based on its summary. Respond with the title only, no quotes, no punctuation at the end.`

type LectureServiceInterface interface {
	ProcessVideo(ctx context.Context, userID string, url string) (*response_models.LectureResult, error)
	RecentLectures(ctx context.Context, userID string) []response_models.RecentItemResponse
	SearchLectures(ctx context.Context, userID string, query string, limit int) ([]response_models.LectureSearchHit, error)
}

type lectureService struct {
	entitlement EntitlementServiceInterface
	transcripts TranscriptServiceInterface
	contentRepo repositories.ContentRepository
	chat        utils.ChatClientInterface
	embeddings  utils.EmbeddingClientInterface
	recents     memcache.RecentItemStore

	// oEmbed lookups reuse the injectable client pattern from the
	// transcript chain so tests can stub them out.
	http       *http.Client
	oembedBase string
}

func NewLectureService(
	entitlement EntitlementServiceInterface,
	transcripts TranscriptServiceInterface,
	contentRepo repositories.ContentRepository,
	chat utils.ChatClientInterface,
	embeddings utils.EmbeddingClientInterface,
	recents memcache.RecentItemStore,
) LectureServiceInterface {
	return &lectureService{
		entitlement: entitlement,
		transcripts: transcripts,
		contentRepo: contentRepo,
		chat:        chat,
		embeddings:  embeddings,
		recents:     recents,
		http:        &http.Client{Timeout: 5 * time.Second},
		oembedBase:  "https://www.youtube.com",
	}
}

// lectureContent is the JSON document stored in ContentRecord.Content for
// video summaries.
type lectureContent struct {
	VideoID    string                              `json:"video_id"`
	Summary    string                              `json:"summary"`
	Transcript []response_models.TranscriptSegment `json:"transcript"`
	Duration   float64                             `json:"duration"`
}

func (l *lectureService) ProcessVideo(ctx context.Context, userID string, url string) (*response_models.LectureResult, error) {
	videoID := utils.ExtractVideoID(url)
	if !utils.IsLikelyVideoID(videoID) {
		return nil, utils.ErrInvalidVideoURL
	}

	if !l.entitlement.CheckUsageLimit(ctx, userID, db_models.FeatureVideoSummaries) {
		return nil, utils.ErrUsageLimitReached
	}

	segments, err := l.transcripts.GetTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}

	transcriptText := joinTranscript(segments)
	summary, err := l.chat.Complete(ctx, summarizeSystemPrompt, transcriptText, utils.ChatOptions{
		Temperature: 0.3,
	})
	if err != nil {
		log.Printf("lecture: summary generation failed for %s: %v", videoID, err)
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, utils.ErrUpstreamFailure
	}

	title := l.resolveTitle(ctx, videoID, summary)

	// The expensive work succeeded, so the unit is consumed from here on
	// even if persistence below hiccups.
	l.entitlement.IncrementUsage(ctx, userID, db_models.FeatureVideoSummaries)

	duration := totalDuration(segments)
	record, err := l.persistLecture(ctx, userID, videoID, title, summary, segments, duration)
	if err != nil {
		log.Printf("lecture: persist failed for %s: %v", videoID, err)
		return nil, utils.ErrDatabaseError
	}

	l.storeEmbedding(ctx, record.ID, summary)
	l.recents.Add(userID, memcache.RecentItem{ID: record.ID.String(), Title: title})

	return &response_models.LectureResult{
		ID:         record.ID,
		VideoID:    videoID,
		Title:      title,
		Summary:    summary,
		Transcript: segments,
		Duration:   duration,
	}, nil
}

// resolveTitle prefers the real video title from the oEmbed endpoint, falls
// back to an LLM-generated one, and finally to a generic label. A title is
// never worth failing the request over.
func (l *lectureService) resolveTitle(ctx context.Context, videoID, summary string) string {
	if title, err := l.fetchVideoTitle(ctx, videoID); err == nil && title != "" {
		return title
	}

	title, err := l.chat.Complete(ctx, lectureTitleSystemPrompt, summary, utils.ChatOptions{
		Temperature: 0.7,
		MaxTokens:   32,
	})
	if err != nil {
		log.Printf("lecture: title generation failed for %s: %v", videoID, err)
		return "Lecture " + videoID
	}
	title = strings.Trim(strings.TrimSpace(title), `"`)
	if title == "" {
		return "Lecture " + videoID
	}
	return title
}

func (l *lectureService) fetchVideoTitle(ctx context.Context, videoID string) (string, error) {
	url := fmt.Sprintf("%s/oembed?url=https://www.youtube.com/watch?v=%s&format=json", l.oembedBase, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.Title), nil
}

func (l *lectureService) persistLecture(
	ctx context.Context,
	userID, videoID, title, summary string,
	segments []response_models.TranscriptSegment,
	duration float64,
) (*db_models.ContentRecord, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	content, err := json.Marshal(lectureContent{
		VideoID:    videoID,
		Summary:    summary,
		Transcript: segments,
		Duration:   duration,
	})
	if err != nil {
		return nil, err
	}

	record := &db_models.ContentRecord{
		UserID:  uid,
		Type:    db_models.ContentTypeVideo,
		Title:   title,
		Content: content,
	}
	if err := l.contentRepo.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// storeEmbedding is best-effort: a failure only costs search visibility.
func (l *lectureService) storeEmbedding(ctx context.Context, contentID uuid.UUID, summary string) {
	if l.embeddings == nil {
		return
	}
	vec, err := l.embeddings.GetEmbedding(ctx, summary)
	if err != nil {
		log.Printf("lecture: embedding generation failed for %s: %v", contentID, err)
		return
	}
	if err := l.contentRepo.InsertEmbedding(ctx, &db_models.ContentEmbedding{
		ContentID: contentID,
		Embedding: vec,
	}); err != nil {
		log.Printf("lecture: embedding insert failed for %s: %v", contentID, err)
	}
}

func (l *lectureService) RecentLectures(ctx context.Context, userID string) []response_models.RecentItemResponse {
	items := l.recents.List(userID)
	out := make([]response_models.RecentItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, response_models.RecentItemResponse{
			ID:      it.ID,
			Title:   it.Title,
			AddedAt: it.AddedAt.Unix(),
		})
	}
	if len(out) > 0 {
		return out
	}

	// The in-memory list is empty after a restart; fall back to the
	// persisted records so the dashboard isn't blank.
	uid, err := uuid.Parse(userID)
	if err != nil {
		return out
	}
	records, err := l.contentRepo.ListByUser(ctx, uid, db_models.ContentTypeVideo, 3)
	if err != nil {
		log.Printf("lecture: recent fallback query failed for %s: %v", uid, err)
		return out
	}
	for _, r := range records {
		out = append(out, response_models.RecentItemResponse{
			ID:      r.ID.String(),
			Title:   r.Title,
			AddedAt: r.CreatedAt,
		})
	}
	return out
}

func (l *lectureService) SearchLectures(ctx context.Context, userID string, query string, limit int) ([]response_models.LectureSearchHit, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	vec, err := l.embeddings.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	records, err := l.contentRepo.SearchByEmbedding(ctx, uid, vec, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	hits := make([]response_models.LectureSearchHit, 0, len(records))
	for _, r := range records {
		var content lectureContent
		if err := json.Unmarshal(r.Content, &content); err != nil {
			log.Printf("lecture: unreadable content document %s: %v", r.ID, err)
			continue
		}
		hits = append(hits, response_models.LectureSearchHit{
			ID:      r.ID,
			Title:   r.Title,
			Summary: content.Summary,
		})
	}
	return hits, nil
}

func joinTranscript(segments []response_models.TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

func totalDuration(segments []response_models.TranscriptSegment) float64 {
	if len(segments) == 0 {
		return 0
	}
	last := segments[len(segments)-1]
	return last.Start + last.Duration
}
