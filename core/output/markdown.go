package output

import (
	"fmt"
	"io"
	"strings"

	"cloudguide/core/advisory"
	"cloudguide/core/questionnaire"
)

// MarkdownFormatter renders reports for docs and PR comments
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) line(format string, args ...interface{}) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format+"\n", args...)
}

// RenderComparison writes a markdown table of provider costs
func (f *MarkdownFormatter) RenderComparison(w io.Writer, c *Comparison) error {
	md := &mdWriter{w: w}
	cur := c.Metadata.Currency
	s := c.Spec

	md.line("## Provider Cost Comparison")
	md.line("")
	md.line("`%d vCPU` · `%v GB RAM` · `%v GB %s` · `%s` · `%s` · `%s`",
		s.VCPU, s.RAM, s.Storage, s.DiskType, s.OS, s.UseCase, s.Region)
	md.line("")
	md.line("| Provider | Instance | Monthly | Yearly |")
	md.line("|---|---|---:|---:|")
	for _, e := range c.Estimates {
		name := e.Provider.String()
		if e.IsMostEconomical {
			name = "**" + name + "** ✅"
		}
		md.line("| %s | `%s` | %s | %s |", name, e.InstanceType, money(e.MonthlyCost, cur), money(e.YearlyCost, cur))
	}
	if c.Metadata.InputHash != "" {
		md.line("")
		md.line("<sub>input `%s`</sub>", c.Metadata.InputHash)
	}
	return md.err
}

// RenderAdvisory writes the advisory as a markdown report
func (f *MarkdownFormatter) RenderAdvisory(w io.Writer, r *advisory.Result) error {
	md := &mdWriter{w: w}

	md.line("## Migration Advisory")
	md.line("")
	md.line("**Strategy:** %s", r.MigrationStrategy)
	md.line("")
	md.line("> %s", r.StrategyDescription)
	md.line("")
	md.line("### Cost: %s (%s)", strings.ToUpper(string(r.CostEstimate.Level)), r.CostEstimate.Range)
	for _, factor := range r.CostEstimate.Factors {
		md.line("- %s", factor)
	}
	md.line("")
	md.line("### Timeline: %s", r.TimelineEstimate.Range)
	for _, factor := range r.TimelineEstimate.Factors {
		md.line("- %s", factor)
	}
	md.line("")
	md.line("### Risks")
	if len(r.Risks) == 0 {
		md.line("_No specific risks identified._")
	} else {
		md.line("| Severity | Risk | Description |")
		md.line("|---|---|---|")
		for _, risk := range r.Risks {
			md.line("| %s | %s | %s |", risk.Severity, risk.Title, risk.Description)
		}
	}
	md.line("")
	md.line("### Recommendations")
	for i, rec := range r.Recommendations {
		md.line("%d. %s", i+1, rec)
	}
	md.line("")
	md.line("### Considerations")
	for _, c := range r.Considerations {
		md.line("- %s", c)
	}
	return md.err
}

// RenderEstimate writes the questionnaire estimate as a markdown report
func (f *MarkdownFormatter) RenderEstimate(w io.Writer, r *questionnaire.Result) error {
	md := &mdWriter{w: w}
	est := r.CostEstimate

	md.line("## Migration Project Estimate")
	md.line("")
	md.line("**%s** (range %s to %s, base %s)",
		money(est.FinalCost, est.Currency), money(est.MinCost, est.Currency),
		money(est.MaxCost, est.Currency), money(est.BaseCost, est.Currency))
	md.line("")
	md.line("| Question | Answer | Multiplier | Impact |")
	md.line("|---|---|---:|---:|")
	for _, item := range r.Breakdown {
		md.line("| %s | %s | %s | %s |", item.QuestionTitle, item.UserAnswer, item.Multiplier.String(), money(item.CostImpact, est.Currency))
	}
	return md.err
}
