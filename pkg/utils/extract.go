package utils

import (
	"fmt"
	"strings"

	"arrivals-board/internal/domain/entity"
)

// ExtractJSONArray pulls the first bracket-delimited span out of free-form
// provider text. The provider is asked for a raw JSON array but routinely
// wraps it in prose or markdown code fences, so fences are stripped first
// and then a greedy match from the first '[' to the last ']' is taken.
// Fails with entity.ErrParse when no such span exists.
func ExtractJSONArray(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON array found in response", entity.ErrParse)
	}

	return cleaned[start : end+1], nil
}
