package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"studymate/pkg/utils"
)

// routeTripper serves canned responses per exact URL; anything unmapped
// gets a 404.
type routeTripper struct {
	routes map[string]mockResponse
	hits   []string
}

type mockResponse struct {
	status int
	body   string
}

func (rt *routeTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	rt.hits = append(rt.hits, url)

	resp, ok := rt.routes[url]
	if !ok {
		resp = mockResponse{status: http.StatusNotFound, body: "not found"}
	}
	if resp.status == 0 {
		resp.status = http.StatusOK
	}
	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(resp.body))),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newTestTranscriptService(routes map[string]mockResponse) (*transcriptService, *routeTripper) {
	rt := &routeTripper{routes: routes}
	return &transcriptService{
		http:               &http.Client{Transport: rt},
		timedTextBase:      "http://yt.test",
		watchBase:          "http://watch.test",
		proxyBases:         []string{"http://proxy1.test", "http://proxy2.test"},
		perStrategyTimeout: 5 * time.Second,
	}, rt
}

const json3Body = `{"events":[
  {"tStartMs":0,"dDurationMs":2000,"segs":[{"utf8":"hello"},{"utf8":"world"}]},
  {"tStartMs":2000,"dDurationMs":1500,"segs":[{"utf8":"  "}]},
  {"tStartMs":3500,"dDurationMs":1000,"segs":[{"utf8":"bye"}]}
]}`

const xmlBody = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="2">hello world</text>
  <text start="2" dur="1.5">   </text>
  <text start="3.5" dur="1">bye</text>
</transcript>`

func TestGetTranscriptFromTimedTextJSON(t *testing.T) {
	svc, _ := newTestTranscriptService(map[string]mockResponse{
		"http://yt.test/api/timedtext?lang=en&v=abc123def45&fmt=json3": {body: json3Body},
	})

	segments, err := svc.GetTranscript(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2 (blank segment dropped)", len(segments))
	}
	if segments[0].Text != "hello world" || segments[0].Start != 0 || segments[0].Duration != 2 {
		t.Errorf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Text != "bye" || segments[1].Start != 3.5 {
		t.Errorf("unexpected second segment: %+v", segments[1])
	}
}

func TestGetTranscriptFallsBackToTimedTextXML(t *testing.T) {
	svc, _ := newTestTranscriptService(map[string]mockResponse{
		"http://yt.test/api/timedtext?lang=en&v=abc123def45&fmt=json3": {status: http.StatusForbidden, body: "nope"},
		"http://yt.test/api/timedtext?lang=en&v=abc123def45":           {body: xmlBody},
	})

	segments, err := svc.GetTranscript(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
}

func TestGetTranscriptScrapesWatchPage(t *testing.T) {
	watchHTML := `<html>stuff before "captionTracks":[` +
		`{"baseUrl":"http://captions.test/fr","languageCode":"fr","vssId":".fr","name":{"simpleText":"French"}},` +
		`{"baseUrl":"http://captions.test/en","languageCode":"en","vssId":".en","name":{"simpleText":"English"}}` +
		`], more stuff</html>`

	svc, rt := newTestTranscriptService(map[string]mockResponse{
		"http://watch.test/watch?v=abc123def45": {body: watchHTML},
		"http://captions.test/en":               {body: xmlBody},
	})

	segments, err := svc.GetTranscript(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	for _, hit := range rt.hits {
		if hit == "http://captions.test/fr" {
			t.Error("picked the French track over the exact English match")
		}
	}
}

func TestGetTranscriptUsesSecondProxyLast(t *testing.T) {
	svc, rt := newTestTranscriptService(map[string]mockResponse{
		"http://proxy2.test/?server_vid=abc123def45": {
			body: `[{"text":"hi","start":1,"dur":2},{"text":"there","start":"3","dur":"1.5"}]`,
		},
	})

	segments, err := svc.GetTranscript(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[1].Start != 3 || segments[1].Duration != 1.5 {
		t.Errorf("string-typed numbers not handled: %+v", segments[1])
	}

	// Every earlier source must have been tried first.
	want := []string{
		"http://yt.test/api/timedtext?lang=en&v=abc123def45&fmt=json3",
		"http://yt.test/api/timedtext?lang=en&v=abc123def45",
		"http://watch.test/watch?v=abc123def45",
		"http://proxy1.test/api/transcript?videoId=abc123def45",
		"http://proxy2.test/?server_vid=abc123def45",
	}
	if len(rt.hits) != len(want) {
		t.Fatalf("got %d requests %v, want %d", len(rt.hits), rt.hits, len(want))
	}
	for i, url := range want {
		if rt.hits[i] != url {
			t.Errorf("request %d = %s, want %s", i, rt.hits[i], url)
		}
	}
}

func TestGetTranscriptFirstProxyFormat(t *testing.T) {
	svc, _ := newTestTranscriptService(map[string]mockResponse{
		"http://proxy1.test/api/transcript?videoId=abc123def45": {
			body: `{"transcript":[{"text":"hi","offset":1000,"duration":2000},{"text":"","offset":3000,"duration":500}]}`,
		},
	})

	segments, err := svc.GetTranscript(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1 (empty text dropped)", len(segments))
	}
	if segments[0].Start != 1 || segments[0].Duration != 2 {
		t.Errorf("milliseconds not normalized to seconds: %+v", segments[0])
	}
}

func TestGetTranscriptAllSourcesFail(t *testing.T) {
	svc, rt := newTestTranscriptService(map[string]mockResponse{})

	_, err := svc.GetTranscript(context.Background(), "abc123def45")
	if !errors.Is(err, utils.ErrNoTranscript) {
		t.Fatalf("error = %v, want ErrNoTranscript", err)
	}
	if len(rt.hits) != 5 {
		t.Errorf("expected all 5 sources tried exactly once, got %v", rt.hits)
	}
}

func TestSelectEnglishTrackPriorities(t *testing.T) {
	tests := []struct {
		name   string
		tracks []captionTrack
		want   string
	}{
		{
			name: "exact lang code wins",
			tracks: []captionTrack{
				{BaseURL: "u1", VssID: "a.en", LanguageCode: "en-GB"},
				{BaseURL: "u2", LanguageCode: "en"},
			},
			want: "u2",
		},
		{
			name: "vssId match beats display name",
			tracks: []captionTrack{
				{BaseURL: "u1", Name: struct {
					SimpleText string `json:"simpleText"`
				}{SimpleText: "English (auto)"}},
				{BaseURL: "u2", VssID: ".en-US"},
			},
			want: "u2",
		},
		{
			name: "anything is better than nothing",
			tracks: []captionTrack{
				{BaseURL: "u1", LanguageCode: "de"},
			},
			want: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectEnglishTrack(tt.tracks)
			if got == nil || got.BaseURL != tt.want {
				t.Errorf("selected %+v, want baseUrl %s", got, tt.want)
			}
		})
	}
}

func TestCaptionParsersAgree(t *testing.T) {
	fromJSON, err := parseCaptionJSON([]byte(json3Body))
	if err != nil {
		t.Fatalf("json parse: %v", err)
	}
	fromXML, err := parseCaptionXML([]byte(xmlBody))
	if err != nil {
		t.Fatalf("xml parse: %v", err)
	}

	if len(fromJSON) != len(fromXML) {
		t.Fatalf("json gave %d segments, xml gave %d", len(fromJSON), len(fromXML))
	}
	for i := range fromJSON {
		if fromJSON[i] != fromXML[i] {
			t.Errorf("segment %d differs: json=%+v xml=%+v", i, fromJSON[i], fromXML[i])
		}
	}
}
