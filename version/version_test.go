package version_test

import (
	"testing"

	"github.com/jetsetilly/testym/test"
	"github.com/jetsetilly/testym/version"
)

func TestRevision(t *testing.T) {
	// the revision is always usable, even without build information
	test.ExpectInequality(t, version.Revision(), "")
}
