package chat

import (
	"context"
	"fmt"

	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/deals"
)

// Language selects the prompt policy and greeting style.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguagePidgin  Language = "pidgin"
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguagePidgin
}

const defaultTopDeals = 3

// Generator is the text-generation collaborator: prompt in, free text out,
// fallible. The reply is treated as opaque text.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	generator Generator
	topDeals  int
}

func NewService(generator Generator) *Service {
	return &Service{
		generator: generator,
		topDeals:  defaultTopDeals,
	}
}

func (s *Service) WithTopDeals(n int) *Service {
	if n > 0 {
		s.topDeals = n
	}

	return s
}

// Ask composes the full prompt (policy, schema description, serialized data,
// top-ranked subset, user question) and forwards it to the generator. The
// generator's error, including a missing credential, is returned verbatim.
func (s *Service) Ask(
	ctx context.Context,
	collection []entity.Deal,
	question string,
	language Language,
) (string, error) {
	prompt := BuildPrompt(
		language,
		deals.ExportCSV(collection),
		deals.TopDealLines(collection, s.topDeals),
		question,
	)

	answer, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generator.GenerateContent: %w", err)
	}

	return answer, nil
}

// Greeting is the canned opening line of a fresh transcript.
func Greeting(language Language) string {
	if language == LanguagePidgin {
		return "Oga/Madam, welcome! See better market deal wey fit give you serious gain. " +
			"Which one you wan check? Beans, Rice abi Tomatoes?"
	}

	return "Welcome! I analyze 1,200+ market prices from Mile 12, Oyingbo, other major markets, " +
		"and online stores to uncover profitable trading opportunities. Ask me about a product " +
		"(like beans, rice, or tomatoes), and I'll show you the best deals and potential profit."
}
