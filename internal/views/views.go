// Package views bundles the HTML templates and the render engine.
package views

import (
	"crypto/md5"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var files embed.FS

// Engine returns the template engine backed by the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		// The templates are compiled into the binary; a failure here is a
		// build defect, not a runtime condition.
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("gravatar", func(email string) string {
		return GravatarURL(email, 100)
	})
	return engine
}

// GravatarURL builds the avatar URL for an email address using the retro
// fallback style.
func GravatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=retro&r=g", hash, size)
}
