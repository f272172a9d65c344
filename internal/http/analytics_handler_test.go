package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"journal-llm/internal/domain"
)

func dayUTC(offset int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestAnalyticsHandlerStatistics(t *testing.T) {
	r, _, moods, _ := setupTestRouter()
	moods.points = []domain.TimelinePoint{
		{Date: dayUTC(-1), Score: 0.5, Emotion: domain.EmotionHappy},
		{Date: dayUTC(0), Score: 0.3, Emotion: domain.EmotionHappy},
	}

	rec := performRequest(r, http.MethodGet, "/analytics/statistics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Statistics domain.MoodStatistics `json:"statistics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Statistics.TotalEntries != 2 {
		t.Fatalf("expected 2 entries, got %d", resp.Statistics.TotalEntries)
	}
	if resp.Statistics.AverageScore != 0.4 {
		t.Fatalf("expected average 0.4, got %v", resp.Statistics.AverageScore)
	}
	if resp.Statistics.DominantEmotion != domain.EmotionHappy {
		t.Fatalf("expected dominant happy, got %q", resp.Statistics.DominantEmotion)
	}
}

func TestAnalyticsHandlerStatistics_InvalidDays(t *testing.T) {
	r, _, _, _ := setupTestRouter()

	rec := performRequest(r, http.MethodGet, "/analytics/statistics?days=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid days") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestAnalyticsHandlerTimeline_EmptyIsArray(t *testing.T) {
	r, _, _, _ := setupTestRouter()

	rec := performRequest(r, http.MethodGet, "/analytics/timeline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"timeline":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAnalyticsHandlerTimeline(t *testing.T) {
	r, _, moods, _ := setupTestRouter()
	moods.points = []domain.TimelinePoint{
		{Date: dayUTC(-2), Score: -0.3, Emotion: domain.EmotionSad},
		{Date: dayUTC(-1), Score: 0.2, Emotion: domain.EmotionCalm},
	}

	rec := performRequest(r, http.MethodGet, "/analytics/timeline?days=7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Timeline []domain.TimelinePoint `json:"timeline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Timeline) != 2 || resp.Timeline[0].Emotion != domain.EmotionSad {
		t.Fatalf("unexpected timeline: %+v", resp.Timeline)
	}
}

func TestAnalyticsHandlerMonthly(t *testing.T) {
	r, _, moods, _ := setupTestRouter()
	moods.monthly = []domain.MonthlyMood{
		{Month: "2026-07", AverageScore: 0.12, EntryCount: 9},
		{Month: "2026-08", AverageScore: -0.05, EntryCount: 4},
	}

	rec := performRequest(r, http.MethodGet, "/analytics/monthly", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Months []domain.MonthlyMood `json:"months"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Months) != 2 || resp.Months[0].Month != "2026-07" {
		t.Fatalf("unexpected months: %+v", resp.Months)
	}
}

func TestAnalyticsHandlerKeywords(t *testing.T) {
	r, _, moods, _ := setupTestRouter()
	moods.keywords = []domain.KeywordCount{
		{Keyword: "anxious", Count: 5},
		{Keyword: "calm", Count: 3},
	}

	rec := performRequest(r, http.MethodGet, "/analytics/keywords?limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Keywords []domain.KeywordCount `json:"keywords"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Keywords) != 2 || resp.Keywords[0].Keyword != "anxious" {
		t.Fatalf("unexpected keywords: %+v", resp.Keywords)
	}
}

func TestAnalyticsHandlerKeywords_EmptyIsArray(t *testing.T) {
	r, _, _, _ := setupTestRouter()

	rec := performRequest(r, http.MethodGet, "/analytics/keywords", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"keywords":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAnalyticsHandlerStreak(t *testing.T) {
	r, _, moods, _ := setupTestRouter()
	moods.points = []domain.TimelinePoint{
		{Date: dayUTC(0), Score: 0.5, Emotion: domain.EmotionHappy},
		{Date: dayUTC(-1), Score: 0.1, Emotion: domain.EmotionCalm},
	}

	rec := performRequest(r, http.MethodGet, "/analytics/streak", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		StreakDays int `json:"streak_days"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.StreakDays != 2 {
		t.Fatalf("expected streak 2, got %d", resp.StreakDays)
	}
}
