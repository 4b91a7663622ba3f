// Where: cli/internal/version/version_test.go
// What: Tests for build version reporting.
package version

import "testing"

func TestGetVersionNonEmpty(t *testing.T) {
	if GetVersion() == "" {
		t.Fatalf("expected a version string")
	}
}
