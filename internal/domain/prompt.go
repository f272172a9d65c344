package domain

// Categorías de prompts de reflexión.
const (
	PromptCategoryGratitude  = "gratitude"
	PromptCategoryGrowth     = "growth"
	PromptCategoryChallenge  = "challenge"
	PromptCategoryCreativity = "creativity"
)

// ReflectionPrompt es una consigna de escritura precargada que se ofrece
// junto al diario.
type ReflectionPrompt struct {
	ID       string `json:"id"`
	Text     string `json:"prompt_text"`
	Category string `json:"category"`
	Active   bool   `json:"is_active"`
}
