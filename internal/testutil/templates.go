package testutil

import (
	"sync"
	"testing"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var bootOnce sync.Once
var bootErr error

// BootTemplates boots the shared template engine once per test binary.
// Tests that render pages must import their feature's views package
// (blank import) so its template set is registered before this runs.
func BootTemplates(t *testing.T) {
	t.Helper()
	bootOnce.Do(func() {
		eng := templates.New(false)
		if err := eng.Boot(zap.NewNop()); err != nil {
			bootErr = err
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	if bootErr != nil {
		t.Fatalf("template engine boot failed: %v", bootErr)
	}
}
