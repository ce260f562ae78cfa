package chatbot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"institute-site-backend/internal/model"
	"institute-site-backend/internal/store"
)

// RulesFile is the on-disk format used to provision chatbot rules.
type RulesFile struct {
	Rules []model.ChatbotRule `yaml:"rules"`
}

// LoadRulesFile reads and validates a YAML rules file.
func LoadRulesFile(path string) ([]model.ChatbotRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules and rejects rules without a usable keyword
// or a response.
func ParseRules(data []byte) ([]model.ChatbotRule, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	var errs []error
	for i := range file.Rules {
		r := &file.Rules[i]
		r.Keywords = cleanKeywords(r.Keywords)
		r.Response = strings.TrimSpace(r.Response)
		if len(r.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("rule %d: at least one keyword is required", i+1))
		}
		if r.Response == "" {
			errs = append(errs, fmt.Errorf("rule %d: response is required", i+1))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return file.Rules, nil
}

// InsertRules stores rules in order and returns how many were written.
func InsertRules(ctx context.Context, s store.Store, rules []model.ChatbotRule) (int, error) {
	for i := range rules {
		if err := s.InsertChatbotRule(ctx, &rules[i]); err != nil {
			return i, err
		}
	}
	return len(rules), nil
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
