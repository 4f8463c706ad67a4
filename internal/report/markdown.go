package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/agbru/primecheck/internal/format"
)

// MarkdownWriter writes a Report as GitHub-flavoured Markdown.
type MarkdownWriter struct{}

// Write implements Writer.
func (MarkdownWriter) Write(w io.Writer, r Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Primality Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Candidate", "`" + format.FormatBigInt(r.Candidate) + "`"},
			{"Digits", strconv.Itoa(format.Digits(r.Candidate))},
			{"Verdict", r.Status()},
			{"Strategy", r.Strategy},
			{"Duration", format.FormatExecutionDuration(r.Duration)},
			{"Run ID", "`" + r.RunID + "`"},
			{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	if info, ok := InfoLine(r.Candidate, r.Verdict); ok {
		md.Note(info)
	} else {
		md.Tip(ResultLine(r.Candidate, r.Verdict))
	}
	md.PlainText("")

	md.H2("Efficiency")
	md.PlainText("")
	md.BulletList(unbullet(EfficiencyLines(r.Efficiency))...)
	md.PlainText("")

	if len(r.Results) > 0 {
		md.H2("Strategies")
		md.PlainText("")
		rows := make([][]string, 0, len(r.Results))
		for _, res := range r.Results {
			status := res.Verdict.String()
			if res.Err != nil {
				status = "❌ " + res.Err.Error()
			}
			rows = append(rows, []string{res.Name, format.FormatExecutionDuration(res.Duration), status})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Strategy", "Duration", "Verdict"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Try Checking These Numbers")
	md.PlainText("")
	md.BulletList(unbullet(SuggestionLines())...)

	return md.Build()
}

// unbullet strips the "• " prefix; Markdown lists bring their own.
func unbullet(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimPrefix(l, "• ")
	}
	return out
}
