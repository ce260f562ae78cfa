package chatbot

import (
	"context"
	"fmt"
	"strings"

	"institute-site-backend/internal/model"
	"institute-site-backend/internal/store"
)

// FallbackResponse is returned when no rule matches.
const FallbackResponse = "I'm sorry, I couldn't understand that. Please ask about admissions, faculty, placements, or programmes."

// Matcher answers chatbot messages from the stored keyword rules.
type Matcher struct {
	store store.Store
}

// NewMatcher creates a Matcher reading rules from s on every call.
func NewMatcher(s store.Store) *Matcher {
	return &Matcher{store: s}
}

// Respond returns the response of the first rule with a keyword contained
// in message, or FallbackResponse.
func (m *Matcher) Respond(ctx context.Context, message string) (string, error) {
	rules, err := m.store.ListChatbotRules(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load chatbot rules: %w", err)
	}
	return Match(rules, message), nil
}

// Match scans rules in order and returns the response of the first rule
// that has a keyword occurring in message, ignoring case. Blank keywords
// never match.
func Match(rules []model.ChatbotRule, message string) string {
	normalized := strings.ToLower(message)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if strings.Contains(normalized, keyword) {
				return rule.Response
			}
		}
	}
	return FallbackResponse
}
