package mail

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type templateData struct {
	AppName   string
	Name      string
	Code      string
	ExpiresAt string
	Minutes   int
}

func renderTemplate(name, appName, recipientName, code string, expiresAt time.Time) (string, error) {
	remaining := int(time.Until(expiresAt).Round(time.Minute) / time.Minute)
	if remaining < 1 {
		remaining = 1
	}
	data := templateData{
		AppName:   appName,
		Name:      recipientName,
		Code:      code,
		ExpiresAt: expiresAt.UTC().Format(time.RFC1123),
		Minutes:   remaining,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
