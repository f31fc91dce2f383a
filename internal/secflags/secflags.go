package secflags

import (
	"strings"

	"github.com/raysh454/kensa/internal/model"
)

// flagCheck binds one security flag to the substrings that raise it.
type flagCheck struct {
	Flag     string
	Patterns []string
}

// checks run in this order; the emitted flag list follows it.
var checks = []flagCheck{
	{
		Flag: model.FlagPromptInjection,
		Patterns: []string{
			"ignore previous instructions",
			"you are now",
			"system:",
			"assistant:",
			"human:",
		},
	},
	{
		Flag: model.FlagSchemaMimicry,
		Patterns: []string{
			`"schema_version"`,
			"output schema",
			"strict json",
			"error schema",
		},
	},
	{
		Flag: model.FlagInstructionInHTML,
		Patterns: []string{
			"## system prompt",
			"critical security directive",
			"analysis rules",
		},
	},
}

// Detect scans the joined, lower-cased concatenation of all fetched content
// for injection, schema-mimicry and embedded-instruction patterns. The
// returned list is de-duplicated and ordered by check.
func Detect(in *model.ScanInput) []string {
	corpus := strings.ToLower(joinContent(in))

	var flags []string
	for _, c := range checks {
		for _, p := range c.Patterns {
			if strings.Contains(corpus, p) {
				flags = append(flags, c.Flag)
				break
			}
		}
	}
	return flags
}

func joinContent(in *model.ScanInput) string {
	var b strings.Builder
	if in.Artifacts.Homepage.HasHTML() {
		b.WriteString(in.Artifacts.Homepage.HTML)
		b.WriteString("\n")
	}
	for _, p := range in.Artifacts.ExtraPages {
		if p.HasHTML() {
			b.WriteString(p.HTML)
			b.WriteString("\n")
		}
	}
	if in.Artifacts.RobotsTxt.HasText() {
		b.WriteString(in.Artifacts.RobotsTxt.Text)
		b.WriteString("\n")
	}
	if in.Artifacts.SitemapXML.HasText() {
		b.WriteString(in.Artifacts.SitemapXML.Text)
		b.WriteString("\n")
	}
	return b.String()
}
