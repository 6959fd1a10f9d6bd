package email

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns Markdown mail templates into a sanitized HTML part and a plain text part
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	// mail clients get links and basic formatting only
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	policy.AllowURLSchemes("https", "http", "mailto")

	return &Renderer{
		md:     md,
		policy: policy,
	}
}

// Render executes the template with data and returns the HTML and plain bodies.
// Values pass through md escaping for the HTML part only; the plain part keeps
// them as given.
func (r *Renderer) Render(tmpl *template.Template, data any) (htmlBody, plainBody string, err error) {
	var source bytes.Buffer
	if err := tmpl.Execute(&source, data); err != nil {
		return "", "", fmt.Errorf("failed to execute mail template: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source.Bytes(), &buf); err != nil {
		return "", "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	plainTmpl, err := tmpl.Clone()
	if err != nil {
		return "", "", fmt.Errorf("failed to clone mail template: %w", err)
	}
	var plain bytes.Buffer
	if err := plainTmpl.Funcs(plainFuncs).Execute(&plain, data); err != nil {
		return "", "", fmt.Errorf("failed to execute plain mail template: %w", err)
	}

	return r.policy.Sanitize(buf.String()), plain.String(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "#", `\#`,
)

// escapeMarkdown neutralizes user-controlled text placed into a template
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var templateFuncs = template.FuncMap{
	"md": escapeMarkdown,
}

var plainFuncs = template.FuncMap{
	"md": func(s string) string { return s },
}

var verificationTemplate = template.Must(template.New("verification").Funcs(templateFuncs).Parse(
	`## Welcome to {{ md .AppName }}, {{ md .Name }}!

Please confirm your email address to activate your account:

[Verify email address]({{ .URL }})

Or copy this link into your browser: {{ .URL }}

This link expires in {{ .ExpiresIn }}. If you did not open an account, ignore this message.
`))
