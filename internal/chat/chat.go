// Package chat answers canned career-trend questions from a static rule table.
package chat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyMessage is returned for messages without any text.
var ErrEmptyMessage = errors.New("no message provided")

const DefaultFallback = "Please ask about growth, demand, salary, or skills for career insights."

// Rule pairs a predicate over the lower-cased message with a canned response.
type Rule struct {
	Name     string
	Match    func(message string) bool
	Response string
}

// RuleConfig is the configurable form of a keyword rule.
type RuleConfig struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
	Response string   `mapstructure:"response"`
}

// Reply is the outcome of a lookup. Rule is empty when the fallback answered.
type Reply struct {
	Rule string
	Text string
}

// Responder evaluates its rules in order; the first matching rule wins.
type Responder struct {
	rules    []Rule
	fallback string
}

// New creates a responder over a copy of rules.
func New(rules []Rule, fallback string) *Responder {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallback
	}
	return &Responder{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// Default returns the built-in career trends responder.
func Default() *Responder {
	return New(DefaultRules(), DefaultFallback)
}

// DefaultRules returns the built-in rule table.
func DefaultRules() []Rule {
	return []Rule{
		Keyword("growth", "AI is projected to grow at a rate of 12% annually until 2030.", "growth"),
		Keyword("demand", "Data Science and DevOps roles are in high demand currently.", "demand"),
		Keyword("salary", "AI Engineers in India earn between ₹8L to ₹25L per year.", "salary"),
		Keyword("skills", "Top in-demand skills: Python, Cloud, DevOps, Cybersecurity, React.", "skills"),
	}
}

// Keyword builds a rule matching messages that contain any of the keywords.
func Keyword(name, response string, keywords ...string) Rule {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	return Rule{
		Name:     name,
		Response: response,
		Match: func(message string) bool {
			for _, k := range lowered {
				if strings.Contains(message, k) {
					return true
				}
			}
			return false
		},
	}
}

// FromConfig builds keyword rules from configuration, keeping their order.
func FromConfig(configs []RuleConfig) ([]Rule, error) {
	rules := make([]Rule, 0, len(configs))
	for i, cfg := range configs {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			name = fmt.Sprintf("rule-%d", i)
		}
		if strings.TrimSpace(cfg.Response) == "" {
			return nil, fmt.Errorf("chat rule %s: response is required", name)
		}
		if len(cfg.Keywords) == 0 {
			return nil, fmt.Errorf("chat rule %s: at least one keyword is required", name)
		}
		rules = append(rules, Keyword(name, cfg.Response, cfg.Keywords...))
	}
	return rules, nil
}

// Respond returns the response of the first rule matching message.
func (r *Responder) Respond(message string) (Reply, error) {
	message = strings.ToLower(strings.TrimSpace(message))
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	for _, rule := range r.rules {
		if rule.Match(message) {
			return Reply{Rule: rule.Name, Text: rule.Response}, nil
		}
	}

	return Reply{Text: r.fallback}, nil
}
