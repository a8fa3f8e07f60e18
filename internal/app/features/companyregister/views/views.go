// internal/app/features/companyregister/views/views.go
package companyregister

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "companyregister",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
