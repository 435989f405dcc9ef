package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"studymate/internal/models/response_models"
	"studymate/pkg/utils"
)

// TranscriptServiceInterface fetches a timed caption transcript for a video,
// trying independent sources in a fixed order until one succeeds.
type TranscriptServiceInterface interface {
	GetTranscript(ctx context.Context, videoID string) ([]response_models.TranscriptSegment, error)
}

type transcriptService struct {
	http *http.Client

	// Base URLs are fields so tests can point the chain at a mock server.
	timedTextBase string
	watchBase     string
	proxyBases    []string

	perStrategyTimeout time.Duration
}

func NewTranscriptService() TranscriptServiceInterface {
	return &transcriptService{
		http:          &http.Client{},
		timedTextBase: "https://www.youtube.com",
		watchBase:     "https://www.youtube.com",
		proxyBases: []string{
			"https://yt-transcript-api.vercel.app",
			"https://youtubetranscript.com",
		},
		perStrategyTimeout: 5 * time.Second,
	}
}

// GetTranscript runs the strategy chain: timedtext API (JSON then XML), the
// watch-page caption-track scrape, then the third-party proxies. Each
// failure is logged and converted into "try next"; only the last error is
// carried into the final failure.
func (t *transcriptService) GetTranscript(ctx context.Context, videoID string) ([]response_models.TranscriptSegment, error) {
	segments, err := t.fromTimedTextAPI(ctx, videoID)
	if err == nil {
		return segments, nil
	}
	log.Printf("transcript: timedtext strategy failed for %s: %v", videoID, err)

	segments, err = t.fromWatchPage(ctx, videoID)
	if err == nil {
		return segments, nil
	}
	log.Printf("transcript: watch-page strategy failed for %s: %v", videoID, err)

	segments, err = t.fromProxies(ctx, videoID)
	if err == nil {
		return segments, nil
	}
	log.Printf("transcript: proxy strategy failed for %s: %v", videoID, err)

	return nil, fmt.Errorf("%w: %v", utils.ErrNoTranscript, err)
}

func (t *transcriptService) fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.perStrategyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// ---------- Strategy 1: timedtext API ----------

type timedTextEvents struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (t *transcriptService) fromTimedTextAPI(ctx context.Context, videoID string) ([]response_models.TranscriptSegment, error) {
	// JSON variant first.
	body, err := t.fetch(ctx, fmt.Sprintf("%s/api/timedtext?lang=en&v=%s&fmt=json3", t.timedTextBase, videoID), nil)
	if err == nil {
		segments, parseErr := parseCaptionJSON(body)
		if parseErr == nil && len(segments) > 0 {
			return segments, nil
		}
		err = parseErr
		if err == nil {
			err = fmt.Errorf("empty transcript")
		}
	}
	log.Printf("transcript: timedtext json variant failed for %s: %v", videoID, err)

	// XML variant as sub-fallback.
	body, err = t.fetch(ctx, fmt.Sprintf("%s/api/timedtext?lang=en&v=%s", t.timedTextBase, videoID), nil)
	if err != nil {
		return nil, err
	}
	segments, err := parseCaptionXML(body)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}
	return segments, nil
}

// ---------- Strategy 2: watch-page caption-track scrape ----------

var (
	captionTracksPattern        = regexp.MustCompile(`"captionTracks":(\[.*?\])(?:,)`)
	captionTracksEscapedPattern = regexp.MustCompile(`\\"captionTracks\\":(\[.*?\])(?:,)`)
)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	VssID        string `json:"vssId"`
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

func (t *transcriptService) fromWatchPage(ctx context.Context, videoID string) ([]response_models.TranscriptSegment, error) {
	body, err := t.fetch(ctx, fmt.Sprintf("%s/watch?v=%s", t.watchBase, videoID), map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	})
	if err != nil {
		return nil, err
	}

	tracks, err := extractCaptionTracks(string(body))
	if err != nil {
		return nil, err
	}

	track := selectEnglishTrack(tracks)
	if track == nil || track.BaseURL == "" {
		return nil, fmt.Errorf("no suitable caption track found")
	}

	trackBody, err := t.fetch(ctx, track.BaseURL, nil)
	if err != nil {
		return nil, err
	}

	segments, err := parseCaptionXML(trackBody)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("caption track contained no text")
	}
	return segments, nil
}

func extractCaptionTracks(html string) ([]captionTrack, error) {
	var raw string
	if m := captionTracksPattern.FindStringSubmatch(html); len(m) >= 2 {
		raw = m[1]
	} else if m := captionTracksEscapedPattern.FindStringSubmatch(html); len(m) >= 2 {
		raw = strings.ReplaceAll(m[1], `\"`, `"`)
		raw = strings.ReplaceAll(raw, `\\`, `\`)
	}
	if raw == "" {
		return nil, fmt.Errorf("no caption tracks found in watch page")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("caption track list is empty")
	}
	return tracks, nil
}

// selectEnglishTrack walks the priority list: exact language code, vssId
// substring, display-name substring, auto-generated English, then anything.
func selectEnglishTrack(tracks []captionTrack) *captionTrack {
	priorities := []func(captionTrack) bool{
		func(tr captionTrack) bool { return tr.LanguageCode == "en" },
		func(tr captionTrack) bool { return strings.Contains(tr.VssID, ".en") },
		func(tr captionTrack) bool {
			return strings.Contains(strings.ToLower(tr.Name.SimpleText), "english")
		},
		func(tr captionTrack) bool { return strings.Contains(tr.VssID, "a.en") },
		func(tr captionTrack) bool { return true },
	}

	for _, match := range priorities {
		for i := range tracks {
			if match(tracks[i]) && tracks[i].BaseURL != "" {
				return &tracks[i]
			}
		}
	}
	return nil
}

// ---------- Strategy 3: third-party proxies ----------

type proxyTranscriptResponse struct {
	Transcript []struct {
		Text     string  `json:"text"`
		Offset   float64 `json:"offset"`
		Duration float64 `json:"duration"`
	} `json:"transcript"`
}

type proxyArrayItem struct {
	Text  string      `json:"text"`
	Start json.Number `json:"start"`
	Dur   json.Number `json:"dur"`
}

func (t *transcriptService) fromProxies(ctx context.Context, videoID string) ([]response_models.TranscriptSegment, error) {
	var lastErr error

	if len(t.proxyBases) > 0 {
		segments, err := t.fromFirstProxy(ctx, videoID, t.proxyBases[0])
		if err == nil {
			return segments, nil
		}
		lastErr = err
		log.Printf("transcript: first proxy failed for %s: %v", videoID, err)
	}

	if len(t.proxyBases) > 1 {
		segments, err := t.fromSecondProxy(ctx, videoID, t.proxyBases[1])
		if err == nil {
			return segments, nil
		}
		lastErr = err
		log.Printf("transcript: second proxy failed for %s: %v", videoID, err)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no proxy services configured")
	}
	return nil, lastErr
}

func (t *transcriptService) fromFirstProxy(ctx context.Context, videoID, base string) ([]response_models.TranscriptSegment, error) {
	body, err := t.fetch(ctx, fmt.Sprintf("%s/api/transcript?videoId=%s", base, videoID), nil)
	if err != nil {
		return nil, err
	}

	var payload proxyTranscriptResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Transcript) == 0 {
		return nil, fmt.Errorf("proxy returned no transcript")
	}

	segments := make([]response_models.TranscriptSegment, 0, len(payload.Transcript))
	for _, item := range payload.Transcript {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		segments = append(segments, response_models.TranscriptSegment{
			Text:     item.Text,
			Start:    item.Offset / 1000,
			Duration: item.Duration / 1000,
		})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("proxy transcript was empty")
	}
	return segments, nil
}

func (t *transcriptService) fromSecondProxy(ctx context.Context, videoID, base string) ([]response_models.TranscriptSegment, error) {
	body, err := t.fetch(ctx, fmt.Sprintf("%s/?server_vid=%s", base, videoID), nil)
	if err != nil {
		return nil, err
	}

	var items []proxyArrayItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("proxy returned no transcript")
	}

	segments := make([]response_models.TranscriptSegment, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		start, _ := item.Start.Float64()
		dur, _ := item.Dur.Float64()
		segments = append(segments, response_models.TranscriptSegment{
			Text:     item.Text,
			Start:    start,
			Duration: dur,
		})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("proxy transcript was empty")
	}
	return segments, nil
}

// ---------- Shared caption parsing ----------

// parseCaptionJSON normalizes the timedtext json3 events shape.
func parseCaptionJSON(body []byte) ([]response_models.TranscriptSegment, error) {
	var payload timedTextEvents
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if len(payload.Events) == 0 {
		return nil, fmt.Errorf("no caption events in response")
	}

	var segments []response_models.TranscriptSegment
	for _, event := range payload.Events {
		if len(event.Segs) == 0 {
			continue
		}
		parts := make([]string, 0, len(event.Segs))
		for _, seg := range event.Segs {
			parts = append(parts, seg.UTF8)
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		segments = append(segments, response_models.TranscriptSegment{
			Text:     text,
			Start:    float64(event.TStartMs) / 1000,
			Duration: float64(event.DDurationMs) / 1000,
		})
	}
	return segments, nil
}

type captionXMLDocument struct {
	XMLName xml.Name         `xml:"transcript"`
	Texts   []captionXMLText `xml:"text"`
}

type captionXMLText struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// parseCaptionXML normalizes the <transcript><text start dur> document shape
// shared by the timedtext XML variant and scraped caption tracks. Entries
// with empty text are dropped.
func parseCaptionXML(body []byte) ([]response_models.TranscriptSegment, error) {
	var doc captionXMLDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML transcript: %w", err)
	}

	var segments []response_models.TranscriptSegment
	for _, text := range doc.Texts {
		trimmed := strings.TrimSpace(text.Body)
		if trimmed == "" {
			continue
		}
		segments = append(segments, response_models.TranscriptSegment{
			Text:     trimmed,
			Start:    text.Start,
			Duration: text.Dur,
		})
	}
	return segments, nil
}
