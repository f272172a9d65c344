package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"journal-llm/internal/domain"
	"journal-llm/internal/llm"
	"journal-llm/internal/service"
)

const (
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorReset   = "\033[0m"
)

var sampleEntries = []string{
	"Today was amazing! I spent the afternoon with friends at the park, " +
		"laughing and feeling so grateful for the people in my life.",
	"I feel really low today. Nothing seems to be going right and I'm " +
		"worried that things won't get better.",
	"I woke up, had breakfast, worked a bit, and watched a show. " +
		"It was just an average day, nothing particularly good or bad.",
}

func main() {
	_ = godotenv.Load()

	var (
		offline   = flag.Bool("offline", false, "skip the model and run the rule classifier only")
		ollamaURL = flag.String("url", envOr("OLLAMA_URL", "http://localhost:11434"), "Ollama base URL")
		model     = flag.String("model", envOr("OLLAMA_MODEL", "llama3.2:1b"), "Ollama model name")
		timeout   = flag.Duration("timeout", 20*time.Second, "model analysis timeout")
	)
	flag.Parse()

	logger := zap.NewExample()
	defer logger.Sync()

	rule := service.NewRuleClassifier()
	validator := service.NewEmotionValidator(logger)

	var analyze func(ctx context.Context, text string) domain.MoodAnalysis
	if *offline {
		fmt.Printf("%s%smood pipeline check (rule classifier only)%s\n\n", colorBold, colorCyan, colorReset)
		analyze = func(_ context.Context, text string) domain.MoodAnalysis {
			return validator.Validate(rule.Classify(text), text)
		}
	} else {
		fmt.Printf("%s%smood pipeline check (model %s at %s)%s\n\n", colorBold, colorCyan, *model, *ollamaURL, colorReset)
		client := llm.NewOllamaClient(*ollamaURL, *model, logger)
		modelClf := service.NewModelClassifier(client, logger)
		moodSvc := service.NewMoodService(modelClf, rule, validator, *timeout, logger)
		analyze = moodSvc.Analyze
	}

	ctx := context.Background()
	for i, text := range sampleEntries {
		fmt.Printf("%s%sEntry #%d%s\n", colorBold, colorYellow, i+1, colorReset)
		fmt.Println(wrapText(text, 80))

		result := analyze(ctx, text)

		fmt.Printf("%sMood score:%s       %.2f\n", colorBold, colorReset, result.Score)
		fmt.Printf("%sDominant emotion:%s %s %s\n", colorBold, colorReset, result.Emotion, result.Emotion.Emoji())
		fmt.Printf("%sConfidence:%s       %.2f\n", colorBold, colorReset, result.Confidence)
		fmt.Printf("%sKeywords:%s         %s\n", colorBold, colorReset, keywordsOrDash(result.Keywords))
		fmt.Printf("%sSource:%s           %s\n", colorBold, colorReset, result.Source)
		if result.Corrected {
			fmt.Printf("%sCorrected:%s        yes (%s)\n", colorBold, colorReset, result.CorrectionReason)
		}
		fmt.Printf("%s%s[color]%s %s (%s)\n", colorBold, colorMagenta, colorReset, result.Emotion.Color(), result.Emotion)
		fmt.Println("\n" + strings.Repeat("-", 80) + "\n")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func keywordsOrDash(keywords []string) string {
	if len(keywords) == 0 {
		return "—"
	}
	return strings.Join(keywords, ", ")
}

// wrapText corta el texto en líneas de a lo sumo width caracteres,
// respetando palabras.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
