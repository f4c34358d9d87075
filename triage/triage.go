package triage

import (
	"context"
	"log"
	"strings"

	"github.com/mediconsult/booking-api/models"
)

// Ordered keyword tiers for the deterministic rule. Urgent wins over
// moderate; anything else is Low.
var urgentKeywords = []string{
	"emergency",
	"severe",
	"acute",
	"bleeding",
	"chest pain",
	"stroke",
	"difficulty breathing",
	"overdose",
}

var moderateKeywords = []string{
	"pain",
	"fever",
	"infection",
	"injury",
	"fracture",
	"burn",
	"vomiting",
	"diarrhea",
}

// LLMClient is the external text classifier. Implemented by the OpenAI
// client; faked in tests.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier assigns a triage priority to a symptom description. When an
// LLM client is configured its answer is preferred, but any error or
// unparseable response falls back to the keyword rule, so Classify is
// total and never fails.
type Classifier struct {
	llm LLMClient
}

// New builds a classifier, attaching the OpenAI delegate when an API key
// is configured.
func New() *Classifier {
	c := &Classifier{}
	if client := NewOpenAIClient(); client != nil {
		c.llm = client
	}
	return c
}

// NewWithClient builds a classifier around an explicit delegate.
func NewWithClient(llm LLMClient) *Classifier {
	return &Classifier{llm: llm}
}

func (c *Classifier) Classify(ctx context.Context, issues string) models.Priority {
	if c.llm != nil {
		answer, err := c.llm.Complete(ctx, classifyPrompt(issues))
		if err == nil {
			if p, ok := parseAnswer(answer); ok {
				return p
			}
			log.Printf("triage: unparseable classifier answer %q, using keyword rule", answer)
		} else {
			log.Printf("triage: classifier call failed, using keyword rule: %v", err)
		}
	}
	return KeywordPriority(issues)
}

// KeywordPriority is the deterministic fallback rule: case-insensitive
// substring scan, urgent tier first.
func KeywordPriority(issues string) models.Priority {
	lower := strings.ToLower(issues)
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			return models.PriorityHigh
		}
	}
	for _, kw := range moderateKeywords {
		if strings.Contains(lower, kw) {
			return models.PriorityMedium
		}
	}
	return models.PriorityLow
}

func classifyPrompt(issues string) string {
	return "You are a medical triage assistant. Classify the urgency of the " +
		"following patient symptom description. Emergencies (chest pain, severe " +
		"bleeding, stroke symptoms, breathing difficulty, overdose) are High. " +
		"Conditions needing timely but routine care (pain, fever, infection, " +
		"injury) are Medium. Everything else is Low. Respond with exactly one " +
		"word: High, Medium, or Low.\n\nSymptoms: " + issues
}

// parseAnswer scans the classifier's reply for a priority word, highest
// first, so a verbose answer like "High priority" still resolves.
func parseAnswer(answer string) (models.Priority, bool) {
	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "high"):
		return models.PriorityHigh, true
	case strings.Contains(lower, "medium"):
		return models.PriorityMedium, true
	case strings.Contains(lower, "low"):
		return models.PriorityLow, true
	}
	return "", false
}
