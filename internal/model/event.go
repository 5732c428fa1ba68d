package model

import (
	"fmt"
	"strings"
)

// MaxTextLen is the maximum event text length accepted by the editor
// and the API.
const MaxTextLen = 60

// Event is a user-authored, time-stamped text item attached to one date.
// ID is assigned by the repository on creation; 0 means not yet persisted.
type Event struct {
	ID   int64  `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM, 24-hour
	Text string `json:"text"`
}

// Suggestion is a provisional event proposed by the suggestion provider.
// It carries no ID until it is committed through the repository.
type Suggestion struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Text string `json:"text"`
}

// DateRange is an inclusive range of date keys.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ValidateText trims the text and checks the editor rules: non-blank and
// at most MaxTextLen characters. It returns the trimmed text.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("text must not be blank")
	}
	if len([]rune(trimmed)) > MaxTextLen {
		return "", fmt.Errorf("text exceeds %d characters", MaxTextLen)
	}
	return trimmed, nil
}
