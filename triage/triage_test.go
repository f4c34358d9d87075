package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediconsult/booking-api/models"
)

func TestKeywordPriority(t *testing.T) {
	tests := []struct {
		name   string
		issues string
		want   models.Priority
	}{
		{"urgent keyword", "severe chest pain", models.PriorityHigh},
		{"urgent case insensitive", "EMERGENCY, can't reach my doctor", models.PriorityHigh},
		{"urgent inside sentence", "I noticed some bleeding after the fall", models.PriorityHigh},
		{"urgent wins over moderate", "severe pain and fever", models.PriorityHigh},
		{"difficulty breathing", "having Difficulty Breathing since morning", models.PriorityHigh},
		{"moderate keyword", "fever and fatigue", models.PriorityMedium},
		{"moderate case insensitive", "suspected INFECTION on my arm", models.PriorityMedium},
		{"moderate fracture", "possible fracture in left wrist", models.PriorityMedium},
		{"routine", "mild headache, seeking routine checkup", models.PriorityLow},
		{"empty", "", models.PriorityLow},
		{"no keywords", "annual wellness visit", models.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordPriority(tt.issues))
		})
	}
}

type fakeLLM struct {
	answer string
	err    error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.answer, f.err
}

func TestClassifyUsesDelegate(t *testing.T) {
	c := NewWithClient(&fakeLLM{answer: "Medium"})
	got := c.Classify(context.Background(), "annual wellness visit")
	assert.Equal(t, models.PriorityMedium, got)
}

func TestClassifyParsesVerboseAnswer(t *testing.T) {
	c := NewWithClient(&fakeLLM{answer: "The priority is High."})
	got := c.Classify(context.Background(), "anything")
	assert.Equal(t, models.PriorityHigh, got)
}

func TestClassifyFallsBackOnError(t *testing.T) {
	c := NewWithClient(&fakeLLM{err: errors.New("rate limited")})
	got := c.Classify(context.Background(), "fever and fatigue")
	assert.Equal(t, models.PriorityMedium, got)
}

func TestClassifyFallsBackOnUnparseableAnswer(t *testing.T) {
	c := NewWithClient(&fakeLLM{answer: "I cannot determine that"})
	got := c.Classify(context.Background(), "severe chest pain")
	assert.Equal(t, models.PriorityHigh, got)
}

func TestClassifyWithoutDelegate(t *testing.T) {
	c := NewWithClient(nil)
	got := c.Classify(context.Background(), "mild headache, seeking routine checkup")
	assert.Equal(t, models.PriorityLow, got)
}

func TestParseAnswerPriorityOrder(t *testing.T) {
	// "High" is checked before "Medium" and "Low", so a hedged answer
	// resolves to the more urgent tier.
	p, ok := parseAnswer("either high or medium")
	assert.True(t, ok)
	assert.Equal(t, models.PriorityHigh, p)

	_, ok = parseAnswer("")
	assert.False(t, ok)
}
