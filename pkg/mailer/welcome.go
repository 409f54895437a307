package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1f2933;">
    <h2>Welcome, {{.Username}}!</h2>
    <p>Your account was created with the <strong>{{.Role}}</strong> role.</p>
    <p>Sign in with your username to start reading{{if .CanWrite}} and writing{{end}} articles.</p>
  </body>
</html>`))

// RenderWelcome produces subject, text, and html bodies for the welcome
// email from job data (Username, Role, CanWrite).
func RenderWelcome(data map[string]any) (subject, text, html string, err error) {
	var buf bytes.Buffer
	if err = welcomeHTML.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	subject = "Welcome to the blog"
	text = fmt.Sprintf("Welcome, %v! Your account was created with the %v role.",
		data["Username"], data["Role"])
	return subject, text, buf.String(), nil
}
