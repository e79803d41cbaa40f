package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"cloudguide/core/advisory"
	"cloudguide/core/determinism"
	"cloudguide/core/questionnaire"
	"cloudguide/core/types"
	"cloudguide/core/ui"
)

// CLIFormatter renders terminal tables
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format { return FormatCLI }

func money(d decimal.Decimal, c types.Currency) string {
	if c == "" {
		c = types.CurrencyUSD
	}
	return determinism.NewMoney(d, c.String()).String()
}

// RenderComparison prints one row per provider and highlights the cheapest
func (f *CLIFormatter) RenderComparison(w io.Writer, c *Comparison) error {
	out := ui.NewWriter(w, f.noColor)
	cur := c.Metadata.Currency

	out.Header("Provider Cost Comparison")
	s := c.Spec
	out.Println("%d vCPU, %v GB RAM, %v GB %s, %s, %s workload in %s",
		s.VCPU, s.RAM, s.Storage, s.DiskType, s.OS, s.UseCase, s.Region)
	out.Println("")

	tbl := out.NewTable("Provider", "Instance", "Monthly", "Yearly", "")
	for _, e := range c.Estimates {
		cells := []string{e.Provider.String(), e.InstanceType, money(e.MonthlyCost, cur), money(e.YearlyCost, cur)}
		if e.IsMostEconomical {
			tbl.AddHighlightedRow(append(cells, "★ most economical")...)
			continue
		}
		tbl.AddRow(append(cells, "")...)
	}
	tbl.Render()

	if best, ok := c.Cheapest(); ok {
		out.Println("")
		out.NewBox().
			Add("Best provider", best.Provider.String()).
			Add("Monthly cost", money(best.MonthlyCost, cur)).
			Add("Yearly cost", money(best.YearlyCost, cur)).
			Render()
	}
	if c.Metadata.InputHash != "" {
		out.Println("")
		out.Println("%s", out.Color(ui.Dim, "input "+c.Metadata.InputHash))
	}
	return nil
}

// RenderAdvisory prints the advisory as labelled sections
func (f *CLIFormatter) RenderAdvisory(w io.Writer, r *advisory.Result) error {
	out := ui.NewWriter(w, f.noColor)

	out.Header("Migration Advisory")
	out.Println("%s %s", out.Color(ui.Bold, "Strategy:"), r.MigrationStrategy)
	out.Println("  %s", r.StrategyDescription)
	out.Println("")

	out.SubHeader(fmt.Sprintf("Cost: %s (%s)", strings.ToUpper(string(r.CostEstimate.Level)), r.CostEstimate.Range))
	for _, factor := range r.CostEstimate.Factors {
		out.Bullet("%s", factor)
	}
	out.Println("")

	out.SubHeader("Timeline: " + r.TimelineEstimate.Range)
	for _, factor := range r.TimelineEstimate.Factors {
		out.Bullet("%s", factor)
	}
	out.Println("")

	out.SubHeader(fmt.Sprintf("Risks (%d)", len(r.Risks)))
	if len(r.Risks) == 0 {
		out.Success("No specific risks identified")
	}
	for _, risk := range r.Risks {
		line := fmt.Sprintf("[%s] %s: %s", risk.Severity, risk.Title, risk.Description)
		switch risk.Severity {
		case types.SeverityHigh:
			out.Error("%s", line)
		case types.SeverityMedium:
			out.Warning("%s", line)
		default:
			out.Info("%s", line)
		}
	}
	out.Println("")

	out.SubHeader("Recommendations")
	for i, rec := range r.Recommendations {
		out.Println("  %d. %s", i+1, rec)
	}
	out.Println("")

	out.SubHeader("Considerations")
	for _, c := range r.Considerations {
		out.Bullet("%s", c)
	}
	return nil
}

// RenderEstimate prints the project range and the per-question breakdown
func (f *CLIFormatter) RenderEstimate(w io.Writer, r *questionnaire.Result) error {
	out := ui.NewWriter(w, f.noColor)
	est := r.CostEstimate

	out.Header("Migration Project Estimate")
	out.NewBox().
		Add("Estimate", money(est.FinalCost, est.Currency)).
		Add("Range", money(est.MinCost, est.Currency)+" - "+money(est.MaxCost, est.Currency)).
		Add("Base cost", money(est.BaseCost, est.Currency)).
		Render()
	out.Println("")

	tbl := out.NewTable("Question", "Answer", "Multiplier", "Impact")
	for _, item := range r.Breakdown {
		impact := money(item.CostImpact, est.Currency)
		if item.ImpactDirection == questionnaire.ImpactIncrease {
			impact = "+" + impact
		}
		tbl.AddRow(item.QuestionTitle, item.UserAnswer, "×"+item.Multiplier.String(), impact)
	}
	tbl.Render()
	return nil
}
