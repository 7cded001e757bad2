package provider

import (
	"errors"
	"strings"
	"testing"
	"time"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/pkg/logger"
)

func TestJSONArrayDecoder_CodeFencedResponse(t *testing.T) {
	d := NewJSONArrayDecoder(logger.NewNop())

	text := "```json\n[{\"id\":\"a\",\"flightNumber\":\"SU 1450\",\"scheduledTime\":\"10:20\",\"status\":\"Задерживается\"}]\n```"
	records, err := d.Decode(text)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.ID != "a" || r.FlightNumber != "SU 1450" || r.ScheduledTime != "10:20" || r.Status != "Задерживается" {
		t.Errorf("decoded record = %+v", r)
	}
}

func TestJSONArrayDecoder_ProseWrappedResponse(t *testing.T) {
	d := NewJSONArrayDecoder(logger.NewNop())

	text := "Вот расписание прилётов:\n[{\"id\":\"x\",\"origin\":\"Москва\"}]\nОбновлено по данным поиска."
	records, err := d.Decode(text)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Origin != "Москва" {
		t.Errorf("decoded records = %+v", records)
	}
}

func TestJSONArrayDecoder_NoArrayFails(t *testing.T) {
	d := NewJSONArrayDecoder(logger.NewNop())

	if _, err := d.Decode("Извините, не могу сформировать расписание."); !errors.Is(err, entity.ErrParse) {
		t.Errorf("expected ErrParse for array-free text, got %v", err)
	}
}

func TestJSONArrayDecoder_MalformedJSONFails(t *testing.T) {
	d := NewJSONArrayDecoder(logger.NewNop())

	if _, err := d.Decode(`[{"id": "a",}]`); !errors.Is(err, entity.ErrParse) {
		t.Errorf("expected ErrParse for malformed JSON, got %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := &GeminiProvider{
		model:       "gemini-2.5-flash",
		airportCode: "KEJ",
		airportCity: "Кемерово",
	}

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // вторник
	prompt := p.BuildPrompt(date)

	for _, want := range []string{
		"KEJ",
		"Кемерово",
		"вторник, 1 сентября",
		"RAW JSON ARRAY",
		"scheduledTime",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// All six canonical status literals are spelled out.
	for _, status := range entity.CanonicalStatuses {
		if !strings.Contains(prompt, string(status)) {
			t.Errorf("prompt missing status literal %q", status)
		}
	}
}
