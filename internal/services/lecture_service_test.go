package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"studymate/internal/models/response_models"
	"studymate/pkg/utils"
)

type fakeTranscripts struct {
	segments []response_models.TranscriptSegment
	err      error
}

func (f *fakeTranscripts) GetTranscript(ctx context.Context, videoID string) ([]response_models.TranscriptSegment, error) {
	return f.segments, f.err
}

func newTestLectureService(
	entitlement EntitlementServiceInterface,
	transcripts TranscriptServiceInterface,
	repo *stubContentRepo,
	chat utils.ChatClientInterface,
) *lectureService {
	return &lectureService{
		entitlement: entitlement,
		transcripts: transcripts,
		contentRepo: repo,
		chat:        chat,
		embeddings:  &stubEmbeddings{},
		recents:     newTestRecents(),
		// No oEmbed route mapped: title falls back to the LLM path.
		http:       &http.Client{Transport: &routeTripper{}, Timeout: time.Second},
		oembedBase: "http://oembed.test",
	}
}

var testSegments = []response_models.TranscriptSegment{
	{Text: "welcome to the course", Start: 0, Duration: 3},
	{Text: "today we cover sorting", Start: 3, Duration: 4},
}

func TestProcessVideoHappyPath(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	repo := &stubContentRepo{}
	chat := &stubChat{responses: []string{"# Sorting\n- merge sort", "Sorting Algorithms"}}
	svc := newTestLectureService(entitlement, &fakeTranscripts{segments: testSegments}, repo, chat)

	result, err := svc.ProcessVideo(context.Background(), uuid.NewString(), "https://www.youtube.com/watch?v=abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.VideoID != "abc123def45" {
		t.Errorf("video id = %q", result.VideoID)
	}
	if result.Summary != "# Sorting\n- merge sort" {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.Title != "Sorting Algorithms" {
		t.Errorf("title = %q", result.Title)
	}
	if result.Duration != 7 {
		t.Errorf("duration = %v, want 7", result.Duration)
	}
	if len(entitlement.increments) != 1 {
		t.Errorf("expected exactly one usage increment, got %d", len(entitlement.increments))
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(repo.inserted))
	}

	var content lectureContent
	if err := json.Unmarshal(repo.inserted[0].Content, &content); err != nil {
		t.Fatalf("stored content is not valid JSON: %v", err)
	}
	if content.VideoID != "abc123def45" || len(content.Transcript) != 2 {
		t.Errorf("stored content incomplete: %+v", content)
	}
}

func TestProcessVideoRejectsBadURL(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	svc := newTestLectureService(entitlement, &fakeTranscripts{}, &stubContentRepo{}, &stubChat{})

	_, err := svc.ProcessVideo(context.Background(), uuid.NewString(), "https://example.com/not-a-video")
	if !errors.Is(err, utils.ErrInvalidVideoURL) {
		t.Fatalf("error = %v, want ErrInvalidVideoURL", err)
	}
	if len(entitlement.increments) != 0 {
		t.Error("rejected request must not consume quota")
	}
}

func TestProcessVideoDeniedAtLimit(t *testing.T) {
	entitlement := &stubEntitlement{allow: false}
	svc := newTestLectureService(entitlement, &fakeTranscripts{segments: testSegments}, &stubContentRepo{}, &stubChat{})

	_, err := svc.ProcessVideo(context.Background(), uuid.NewString(), "abc123def45")
	if !errors.Is(err, utils.ErrUsageLimitReached) {
		t.Fatalf("error = %v, want ErrUsageLimitReached", err)
	}
}

func TestProcessVideoFailedWorkLeavesQuotaAlone(t *testing.T) {
	tests := []struct {
		name        string
		transcripts TranscriptServiceInterface
		chat        utils.ChatClientInterface
	}{
		{
			name:        "no transcript found",
			transcripts: &fakeTranscripts{err: fmt.Errorf("%w: exhausted", utils.ErrNoTranscript)},
			chat:        &stubChat{responses: []string{"summary"}},
		},
		{
			name:        "summary generation fails",
			transcripts: &fakeTranscripts{segments: testSegments},
			chat:        &stubChat{err: errors.New("model overloaded")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entitlement := &stubEntitlement{allow: true}
			svc := newTestLectureService(entitlement, tt.transcripts, &stubContentRepo{}, tt.chat)

			if _, err := svc.ProcessVideo(context.Background(), uuid.NewString(), "abc123def45"); err == nil {
				t.Fatal("expected an error")
			}
			if len(entitlement.increments) != 0 {
				t.Error("failed generation must not consume quota")
			}
		})
	}
}

func TestProcessVideoTitleFallsBackToGeneric(t *testing.T) {
	// Summary succeeds, oEmbed is unreachable and the title call fails too.
	chat := &stubChat{responses: []string{"a summary", ""}}
	svc := newTestLectureService(&stubEntitlement{allow: true}, &fakeTranscripts{segments: testSegments}, &stubContentRepo{}, chat)

	result, err := svc.ProcessVideo(context.Background(), uuid.NewString(), "abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "Lecture abc123def45" {
		t.Errorf("title = %q, want generic fallback", result.Title)
	}
}

func TestRecentLecturesReflectsProcessedVideos(t *testing.T) {
	entitlement := &stubEntitlement{allow: true}
	chat := &stubChat{responses: []string{"summary", "Title"}}
	svc := newTestLectureService(entitlement, &fakeTranscripts{segments: testSegments}, &stubContentRepo{}, chat)

	userID := uuid.NewString()
	if _, err := svc.ProcessVideo(context.Background(), userID, "abc123def45"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := svc.RecentLectures(context.Background(), userID)
	if len(items) != 1 {
		t.Fatalf("got %d recent items, want 1", len(items))
	}
	if len(svc.RecentLectures(context.Background(), uuid.NewString())) != 0 {
		t.Error("recent lists must be per user")
	}
}
