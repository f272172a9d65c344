package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/repository"
)

const (
	defaultStatsDays    = 30
	defaultTimelineDays = 60
	defaultKeywordLimit = 20
	monthlyWindowMonths = 12
	streakLookbackDays  = 365

	// trendThreshold separa mejora/empeoramiento de ruido entre mitades
	// de la ventana.
	trendThreshold = 0.1
)

// AnalyticsService agrega los análisis guardados en vistas para el cliente:
// estadísticas por ventana, línea de tiempo, promedios mensuales, keywords
// frecuentes y racha de días positivos.
type AnalyticsService struct {
	logger *zap.Logger
	moods  repository.MoodRepository
	cache  StatsCache
}

func NewAnalyticsService(logger *zap.Logger, moods repository.MoodRepository, cache StatsCache) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		logger: logger,
		moods:  moods,
		cache:  cache,
	}
}

// Statistics resume la ventana de días pedida. Los resultados se cachean
// hasta la próxima escritura de entradas o el vencimiento del TTL.
func (s *AnalyticsService) Statistics(ctx context.Context, days int) (domain.MoodStatistics, error) {
	if days <= 0 {
		days = defaultStatsDays
	}

	if s.cache != nil {
		if stats, ok := s.cache.Get(days); ok {
			return stats, nil
		}
	}

	points, err := s.moods.ListForWindow(ctx, startOfDayUTC(time.Now().UTC().AddDate(0, 0, -days)))
	if err != nil {
		return domain.MoodStatistics{}, err
	}

	stats := buildStatistics(points)

	if s.cache != nil {
		if err := s.cache.Set(days, stats); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

// Timeline devuelve los puntos fechados de la ventana en orden cronológico.
func (s *AnalyticsService) Timeline(ctx context.Context, days int) ([]domain.TimelinePoint, error) {
	if days <= 0 {
		days = defaultTimelineDays
	}
	return s.moods.ListForWindow(ctx, startOfDayUTC(time.Now().UTC().AddDate(0, 0, -days)))
}

// MonthlyAverages devuelve el promedio por mes calendario de los últimos
// doce meses.
func (s *AnalyticsService) MonthlyAverages(ctx context.Context) ([]domain.MonthlyMood, error) {
	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthlyWindowMonths - 1), 0)
	return s.moods.MonthlyAverages(ctx, since)
}

// TopKeywords devuelve las keywords más frecuentes entre todos los análisis.
func (s *AnalyticsService) TopKeywords(ctx context.Context, limit int) ([]domain.KeywordCount, error) {
	if limit <= 0 {
		limit = defaultKeywordLimit
	}
	return s.moods.TopKeywords(ctx, limit)
}

// Streak cuenta días consecutivos hacia atrás desde hoy cuyo mejor score
// del día no es negativo. Un día sin entradas corta la racha.
func (s *AnalyticsService) Streak(ctx context.Context) (int, error) {
	points, err := s.moods.ListForWindow(ctx, startOfDayUTC(time.Now().UTC().AddDate(0, 0, -streakLookbackDays)))
	if err != nil {
		return 0, err
	}
	return positiveStreak(points, time.Now().UTC()), nil
}

func buildStatistics(points []domain.TimelinePoint) domain.MoodStatistics {
	stats := domain.MoodStatistics{
		EmotionDistribution: make(map[domain.Emotion]int),
		Trend:               domain.TrendStable,
	}
	if len(points) == 0 {
		return stats
	}

	var sum float64
	for _, p := range points {
		sum += p.Score
		stats.EmotionDistribution[p.Emotion]++
	}

	stats.TotalEntries = len(points)
	stats.AverageScore = round2(sum / float64(len(points)))
	stats.DominantEmotion = dominantInDistribution(stats.EmotionDistribution)
	stats.Trend = trendOf(points)
	return stats
}

func dominantInDistribution(dist map[domain.Emotion]int) domain.Emotion {
	var best domain.Emotion
	bestCount := 0
	for _, e := range domain.AllEmotions {
		if dist[e] > bestCount {
			best = e
			bestCount = dist[e]
		}
	}
	return best
}

// trendOf compara el promedio de la primera mitad de la ventana contra la
// segunda. Con menos de cuatro puntos no hay señal.
func trendOf(points []domain.TimelinePoint) string {
	if len(points) < 4 {
		return domain.TrendStable
	}

	half := len(points) / 2
	diff := meanScore(points[half:]) - meanScore(points[:half])

	switch {
	case diff > trendThreshold:
		return domain.TrendImproving
	case diff < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func meanScore(points []domain.TimelinePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	return sum / float64(len(points))
}

// positiveStreak reduce los puntos al mejor score por día y camina hacia
// atrás desde now.
func positiveStreak(points []domain.TimelinePoint, now time.Time) int {
	best := make(map[string]float64)
	for _, p := range points {
		key := p.Date.UTC().Format("2006-01-02")
		if cur, ok := best[key]; !ok || p.Score > cur {
			best[key] = p.Score
		}
	}

	day := startOfDayUTC(now)
	streak := 0
	for {
		score, ok := best[day.Format("2006-01-02")]
		if !ok || score < 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
