package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pregame/models"
)

// RenderSummaryHTML renders a view model as a standalone HTML summary page.
// The view model is composed into markdown first so the output stays close
// to what a chat surface would show.
func RenderSummaryHTML(vm *models.ViewModel) []byte {
	md := summaryMarkdown(vm)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: vm.Header.Title,
	})
	return markdown.Render(doc, renderer)
}

func summaryMarkdown(vm *models.ViewModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s\n\n", vm.Header.SportIcon, vm.Header.Title)
	fmt.Fprintf(&b, "*%s*\n\n", vm.Header.Subtitle)

	fmt.Fprintf(&b, "## Quick Take\n\n")
	fmt.Fprintf(&b, "**%s** favored (%d%% win probability, %s confidence, %s risk)\n\n",
		vm.QuickTake.FavoredTeam, vm.QuickTake.ConfidencePercent,
		vm.QuickTake.ConfidenceLevel, vm.QuickTake.RiskLevel)
	fmt.Fprintf(&b, "%s\n\n", vm.QuickTake.Recommendation)
	if vm.QuickTake.Rationale != "" {
		fmt.Fprintf(&b, "%s\n\n", vm.QuickTake.Rationale)
	}

	if len(vm.KeyDrivers.Positives) > 0 || vm.KeyDrivers.Risk != "" {
		fmt.Fprintf(&b, "## Key Drivers\n\n")
		for _, positive := range vm.KeyDrivers.Positives {
			fmt.Fprintf(&b, "- %s\n", positive)
		}
		if vm.KeyDrivers.Risk != "" {
			fmt.Fprintf(&b, "- ⚠️ %s\n", vm.KeyDrivers.Risk)
		}
		b.WriteString("\n")
	}

	if len(vm.BetOptions) > 0 {
		fmt.Fprintf(&b, "## Bet Options\n\n")
		for _, option := range vm.BetOptions {
			fmt.Fprintf(&b, "- **%s**: %s (%s confidence)", option.Label, option.Lean, option.ConfidenceLevel)
			if option.Explanation != "" {
				fmt.Fprintf(&b, ": %s", option.Explanation)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(vm.MatchupCards) > 0 {
		fmt.Fprintf(&b, "## Matchups\n\n")
		for _, card := range vm.MatchupCards {
			fmt.Fprintf(&b, "### %s %s\n\n%s\n\n", card.Icon, card.Title, card.Body)
		}
	}

	if len(vm.Trends) > 0 {
		fmt.Fprintf(&b, "## Trends\n\n")
		for _, trend := range vm.Trends {
			fmt.Fprintf(&b, "- %s\n", trend)
		}
		b.WriteString("\n")
	}

	if vm.LimitedDataNote != "" {
		fmt.Fprintf(&b, "> %s\n\n", vm.LimitedDataNote)
	}

	if vm.Evidence != nil && vm.Evidence.Disclaimer != "" {
		fmt.Fprintf(&b, "---\n\n*%s*\n", vm.Evidence.Disclaimer)
	}

	return b.String()
}
