// Package version records the application name and the vcs revision the
// binary was built from.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "testYM"

var revision string

// Revision returns the vcs revision the binary was built from. if the source
// had uncommitted changes at build time the string is suffixed with "+dirty".
// a binary built without vcs information, with "go run ." for example,
// reports "local"
func Revision() string {
	return revision
}

func init() {
	var vcsRevision string
	var vcsModified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "local"
		return
	}

	revision = vcsRevision
	if vcsModified {
		revision = fmt.Sprintf("%s+dirty", revision)
	}
}
