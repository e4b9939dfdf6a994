package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown produces a markdown report of the run summary.
func (s Summary) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Simulation run %s\n\n", s.RunID)
	fmt.Fprintf(&b, "Null data, %d trials, %d observations per trial, %d nuisance covariates, threshold %.2f, seed %d.\n\n",
		s.TrialCount, s.Config.Observations, s.Config.Covariates, s.Config.Alpha, s.Config.Seed)

	fmt.Fprintf(&b, "| Outcome | Trials | Share |\n")
	fmt.Fprintf(&b, "|---|---|---|\n")
	fmt.Fprintf(&b, "| at least one significant probe | %d | %.1f%% |\n", s.FlaggedCount, 100*s.Fraction)
	fmt.Fprintf(&b, "| no significant probe | %d | %.1f%% |\n\n", s.NotFlaggedCount(), 100*(1-s.Fraction))

	if len(s.TriggerCounts) > 0 {
		fmt.Fprintf(&b, "## Probe triggers\n\n")
		fmt.Fprintf(&b, "| Probe | Trials flagged |\n")
		fmt.Fprintf(&b, "|---|---|\n")
		for _, name := range s.sortedProbes() {
			fmt.Fprintf(&b, "| %s | %d |\n", name, s.TriggerCounts[name])
		}
		fmt.Fprintf(&b, "\nMean significant probes per trial: %.2f (max %.0f).\n", s.MeanTriggers, s.MaxTriggers)
	}

	fmt.Fprintf(&b, "\nEvery column in every dataset was an independent standard normal draw: the true effect is zero everywhere, and every flagged trial above is a false positive.\n")
	return b.String()
}

// RenderHTML renders the markdown report to a standalone HTML fragment.
func (s Summary) RenderHTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(s.RenderMarkdown()))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
