package chatbot

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyPrompt = errors.New("prompt is empty")

const fallbackReply = "I'm not sure I understand. Try asking about workouts, diets or your fitness goals."

type Source string

const (
	SourceRule      Source = "rule"
	SourceGenerator Source = "generator"
	SourceFallback  Source = "fallback"
)

type Reply struct {
	Text   string `json:"response"`
	Source Source `json:"source"`
}

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Bot struct {
	rules     []Rule
	generator generator
}

// NewBot creates a bot answering from rules first. The generator is optional.
func NewBot(rules []Rule, gen generator) *Bot {
	return &Bot{
		rules:     rules,
		generator: gen,
	}
}

func (b *Bot) Reply(ctx context.Context, prompt string) (Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Reply{}, ErrEmptyPrompt
	}

	if rule, ok := Match(b.rules, prompt); ok {
		return Reply{Text: rule.Reply, Source: SourceRule}, nil
	}

	if b.generator == nil {
		return Reply{Text: fallbackReply, Source: SourceFallback}, nil
	}

	text, err := b.generator.Generate(ctx, prompt)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Source: SourceGenerator}, nil
}
