package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

const Welcome = "welcome"

// WelcomeData fills the welcome template.
type WelcomeData struct {
	Name       string
	AppName    string
	SupportURL string
}

// Subject returns the subject line for a template name.
func Subject(template string) string {
	switch template {
	case Welcome:
		return "Welcome to TaskFlow"
	default:
		return "Notification"
	}
}

// Render produces the text and HTML bodies for a template name.
func Render(template string, data map[string]any) (text, html string, err error) {
	t, err := htmpl.ParseFS(FS, template+".tmpl")
	if err != nil {
		return "", "", fmt.Errorf("parse template %q: %w", template, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render template %q: %w", template, err)
	}
	html = buf.String()
	text = "Welcome aboard!"
	if n, ok := data["Name"].(string); ok && n != "" {
		text = "Hi " + n + ", welcome aboard!"
	}
	return text, html, nil
}
