package llm

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// ModelCost is the list price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a request with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter vendor prefixes ("google/...") are ignored, and a dated or
// suffixed ID ("gpt-4o-mini-2024-07-18", "gemini-2.0-flash-exp") is priced
// as the longest known model it extends.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	for _, known := range pricedByLength() {
		if strings.HasPrefix(id, known+"-") {
			c := modelCosts[known]
			return &c
		}
	}
	return nil
}

// pricedByLength lists the priced model IDs, longest first.
var pricedByLength = sync.OnceValue(func() []string {
	ids := make([]string, 0, len(modelCosts))
	for id := range modelCosts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
	})
	return ids
})

// modelCosts holds list prices from models.dev for the models the
// providers are configured with, as of 2026-02.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku":  {InputPerMTok: 0.8, OutputPerMTok: 4},
	"claude-3-haiku":    {InputPerMTok: 0.25, OutputPerMTok: 1.25},
	"claude-haiku-4-5":  {InputPerMTok: 1, OutputPerMTok: 5},
	"claude-sonnet-4":   {InputPerMTok: 3, OutputPerMTok: 15},
	"claude-sonnet-4-5": {InputPerMTok: 3, OutputPerMTok: 15},
	"claude-opus-4-5":   {InputPerMTok: 5, OutputPerMTok: 25},

	// OpenAI
	"gpt-4o":       {InputPerMTok: 2.5, OutputPerMTok: 10},
	"gpt-4o-mini":  {InputPerMTok: 0.15, OutputPerMTok: 0.6},
	"gpt-4.1":      {InputPerMTok: 2, OutputPerMTok: 8},
	"gpt-4.1-mini": {InputPerMTok: 0.4, OutputPerMTok: 1.6},
	"gpt-4.1-nano": {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gpt-5":        {InputPerMTok: 1.25, OutputPerMTok: 10},
	"gpt-5-mini":   {InputPerMTok: 0.25, OutputPerMTok: 2},
	"gpt-5-nano":   {InputPerMTok: 0.05, OutputPerMTok: 0.4},
	"o4-mini":      {InputPerMTok: 1.1, OutputPerMTok: 4.4},

	// Google
	"gemini-1.5-flash":      {InputPerMTok: 0.075, OutputPerMTok: 0.3},
	"gemini-2.0-flash":      {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gemini-2.0-flash-lite": {InputPerMTok: 0.075, OutputPerMTok: 0.3},
	"gemini-2.5-flash":      {InputPerMTok: 0.3, OutputPerMTok: 2.5},
	"gemini-2.5-flash-lite": {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gemini-2.5-pro":        {InputPerMTok: 1.25, OutputPerMTok: 10},
	"gemini-3-flash":        {InputPerMTok: 0.5, OutputPerMTok: 3},
	"gemini-flash-latest":   {InputPerMTok: 0.3, OutputPerMTok: 2.5},
}
