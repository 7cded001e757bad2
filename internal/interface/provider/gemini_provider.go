package provider

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"
	"arrivals-board/pkg/logger"
	"arrivals-board/pkg/metrics"

	"google.golang.org/genai"
)

// apiKeyEnv is the environment variable holding the provider credential.
// It is read when a request is built, not at startup, so an unset key
// surfaces as a fetch-time configuration error.
const apiKeyEnv = "GEMINI_API_KEY"

var ruWeekdays = [...]string{
	"воскресенье", "понедельник", "вторник", "среда",
	"четверг", "пятница", "суббота",
}

var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// GeminiProvider fetches arrival schedules from the Gemini API with search
// grounding enabled, so generated boards are biased toward real weather
// and delay conditions. Grounding is advisory only; the provider may still
// return fabricated or stale data.
type GeminiProvider struct {
	model       string
	airportCode string
	airportCity string
	decoder     ResponseDecoder
	logger      logger.Logger
	metrics     *metrics.Metrics

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini schedule provider
func NewGeminiProvider(model, airportCode, airportCity string, decoder ResponseDecoder, logger logger.Logger, m *metrics.Metrics) repository.ScheduleProvider {
	return &GeminiProvider{
		model:       model,
		airportCode: airportCode,
		airportCity: airportCity,
		decoder:     decoder,
		logger:      logger,
		metrics:     m,
	}
}

// FetchArrivals queries the provider for one target date and returns the
// decoded raw records. No retry happens here; retries are a scheduler
// concern.
func (p *GeminiProvider) FetchArrivals(ctx context.Context, date time.Time) ([]entity.RawArrival, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	prompt := p.BuildPrompt(date)
	start := time.Now()

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		// Enable real-time search; a response MIME type cannot be forced
		// together with tools, so the text is decoded manually.
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		p.logger.Error("Provider request failed", "model", p.model, "error", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrTransport, err)
	}

	if p.metrics != nil {
		p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		p.logger.Debug("Grounding sources attached",
			"chunks", len(resp.Candidates[0].GroundingMetadata.GroundingChunks))
	}

	text := resp.Text()
	if text == "" {
		text = "[]"
	}

	return p.decoder.Decode(text)
}

// getClient lazily initializes the Gemini client. The credential check
// happens here, when the first request is constructed.
func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", entity.ErrConfiguration, apiKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrConfiguration, err)
	}

	p.client = client
	return client, nil
}

// BuildPrompt assembles the natural-language request for one target date:
// the airport, the date, the six canonical status literals and a strict
// raw-JSON-array output contract.
func (p *GeminiProvider) BuildPrompt(date time.Time) string {
	dateRu := fmt.Sprintf("%s, %d %s",
		ruWeekdays[date.Weekday()], date.Day(), ruMonths[date.Month()-1])

	statuses := make([]string, len(entity.CanonicalStatuses))
	for i, s := range entity.CanonicalStatuses {
		statuses[i] = fmt.Sprintf("%q", string(s))
	}

	return fmt.Sprintf(`Check current weather in %[2]s (%[1]s) and flight arrivals for %[3]s.

Based on the search results (weather conditions like fog/snow or actual flight delays on Flightradar24), generate a JSON array of arrival flights for %[1]s airport on %[3]s.

RULES:
1. If search shows BAD WEATHER (fog, snowstorm) at the airport, mark 30-50%% of flights as "Задерживается" and set 'estimatedTime' 1-3 hours later than 'scheduledTime'.
2. Use REAL flight numbers and routes for %[1]s.
3. Status MUST be one of: %[4]s.
4. 'estimatedTime' is mandatory. If on time, it equals 'scheduledTime'.
5. STRICTLY OUTPUT ONLY RAW JSON ARRAY. No markdown, no explanations.

JSON Structure per object:
{
  "id": "unique_string",
  "flightNumber": "string (e.g. SU 1450)",
  "airline": "string",
  "origin": "string (City)",
  "scheduledTime": "HH:mm",
  "estimatedTime": "HH:mm",
  "status": "string",
  "aircraft": "string"
}`, p.airportCode, p.airportCity, dateRu, strings.Join(statuses, ", "))
}
