// internal/app/features/branchregister/views/views.go
package branchregister

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "branchregister",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
