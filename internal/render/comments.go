package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/pr-size-helper/internal/models"
	"github.com/ryo246912/pr-size-helper/internal/size"
)

// markerPrefix starts every hidden marker the bot writes
const markerPrefix = "<!-- pr-size-helper:"

const (
	// GuidanceMarker identifies the bot's size-guidance comment on a pull request
	GuidanceMarker = markerPrefix + "guidance -->"
	// ClarifyMarker identifies a request to fill in an empty reason
	ClarifyMarker = markerPrefix + "clarify -->"
)

// ReasonMarker identifies the tracking comment for one source issue
func ReasonMarker(sourceIssueURL string) string {
	return fmt.Sprintf("%sreason %s -->", markerPrefix, sourceIssueURL)
}

// HasMarker reports whether body carries marker
func HasMarker(body, marker string) bool {
	return strings.Contains(body, marker)
}

// IsBotBody reports whether body was rendered by this bot
func IsBotBody(body string) bool {
	return strings.Contains(body, markerPrefix)
}

// GuidanceComment renders the size-guidance comment with the category table
func GuidanceComment(scheme size.Scheme, v size.Verdict) string {
	var b strings.Builder
	b.WriteString(GuidanceMarker + "\n")
	fmt.Fprintf(&b, "### Pull request size: `%s`\n\n", v.Label)
	b.WriteString(v.Message + "\n\n")

	nameWidth := runewidth.StringWidth("Label")
	for _, th := range scheme.Thresholds {
		nameWidth = max(nameWidth, runewidth.StringWidth(scheme.LabelFor(th.Name)))
	}
	rangeWidth := runewidth.StringWidth("Changed lines")

	fmt.Fprintf(&b, "|   | %s | %s |\n", PadRight("Label", nameWidth), PadRight("Changed lines", rangeWidth))
	fmt.Fprintf(&b, "|---|%s|%s|\n", strings.Repeat("-", nameWidth+2), strings.Repeat("-", rangeWidth+2))
	for i, th := range scheme.Thresholds {
		mark := " "
		if i == v.Index {
			mark = "➜"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", mark,
			PadRight(scheme.LabelFor(th.Name), nameWidth),
			PadRight(scheme.Thresholds.Range(i), rangeWidth))
	}
	return b.String()
}

// TrackingComment renders the record of a size reason
func TrackingComment(r models.ReasonRecord) string {
	var b strings.Builder
	b.WriteString(ReasonMarker(r.IssueURL) + "\n")
	fmt.Fprintf(&b, "**Size reason** for [%s/%s#%d](%s)", r.Owner, r.Repo, r.IssueNumber, r.IssueURL)
	if r.SizeLabel != "" {
		fmt.Fprintf(&b, " (`%s`)", r.SizeLabel)
	}
	b.WriteString("\n\n")
	for _, line := range strings.Split(r.Reason, "\n") {
		b.WriteString("> " + line + "\n")
	}
	fmt.Fprintf(&b, "\nReported by @%s in [this comment](%s).\n", r.ReportedBy, r.SourceCommentURL)
	return b.String()
}

// ClarifyComment asks a commenter to write out their reason
func ClarifyComment(login string) string {
	return fmt.Sprintf("%s\n@%s please add an explanation after `!reason`, for example `!reason generated code from the schema update`.", ClarifyMarker, login)
}

// DigestIssueBody is the description of a newly opened digest issue
func DigestIssueBody() string {
	return "Reasons given for pull request sizes are collected here as comments by pr-size-helper."
}
