package domain

import "time"

// JournalEntry es un registro de diario con fecha.
type JournalEntry struct {
	ID        string    `json:"id"`
	EntryDate time.Time `json:"entry_date"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryWithMood junta una entrada con su análisis, cuando existe.
type EntryWithMood struct {
	Entry JournalEntry  `json:"entry"`
	Mood  *MoodAnalysis `json:"mood,omitempty"`
}
