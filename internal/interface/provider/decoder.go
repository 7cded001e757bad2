package provider

import (
	"encoding/json"
	"fmt"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/pkg/logger"
	"arrivals-board/pkg/utils"
)

// ResponseDecoder turns free-form provider text into raw arrival records.
// The current provider has no strict schema, so decoding is a tolerant
// extraction heuristic; keeping it behind an interface lets a
// schema-validated provider replace it without touching callers.
type ResponseDecoder interface {
	Decode(text string) ([]entity.RawArrival, error)
}

// JSONArrayDecoder decodes the first bracket-delimited JSON array span
// found in the response text.
type JSONArrayDecoder struct {
	logger logger.Logger
}

// NewJSONArrayDecoder creates a new JSON array decoder
func NewJSONArrayDecoder(logger logger.Logger) *JSONArrayDecoder {
	return &JSONArrayDecoder{
		logger: logger,
	}
}

// Decode extracts and unmarshals the arrivals array. Both a missing span
// and malformed JSON fail the whole response; partial results are never
// returned.
func (d *JSONArrayDecoder) Decode(text string) ([]entity.RawArrival, error) {
	span, err := utils.ExtractJSONArray(text)
	if err != nil {
		d.logger.Error("No JSON array in provider response", "raw", text)
		return nil, err
	}

	var records []entity.RawArrival
	if err := json.Unmarshal([]byte(span), &records); err != nil {
		d.logger.Error("Failed to unmarshal provider response", "raw", span, "error", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrParse, err)
	}

	return records, nil
}
