package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/abhisek/vidya/internal/llm"
	"github.com/abhisek/vidya/internal/store"
)

// printUsage writes token usage by purpose and estimated cost by model.
func printUsage(ctx context.Context, w io.Writer, events store.EventRepo) error {
	byPurpose, err := events.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded.")
		return nil
	}

	rule := strings.Repeat("─", 72)

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
	fmt.Fprintln(w, rule)

	var total store.UsageTotals
	for _, purpose := range slices.Sorted(maps.Keys(byPurpose)) {
		u := byPurpose[purpose]
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %8d\n",
			purpose, u.Requests, u.Failures, u.InputTokens, u.OutputTokens, avgLatency(u))
		total.Requests += u.Requests
		total.Failures += u.Failures
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d\n",
		"TOTAL", total.Requests, total.Failures, total.InputTokens, total.OutputTokens)

	byModel, err := events.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, rule)

	var totalCost float64
	var unknown []string
	for _, model := range slices.Sorted(maps.Keys(byModel)) {
		u := byModel[model]
		cost := llm.LookupCost(model)
		if cost == nil {
			unknown = append(unknown, model)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(model, 32), u.Requests, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(model, 32), u.Requests, u.InputTokens, u.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(w, rule)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func avgLatency(u store.UsageTotals) int64 {
	if u.Requests == 0 {
		return 0
	}
	return u.LatencyMs / int64(u.Requests)
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
