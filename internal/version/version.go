// Package version provides build version information for glyphc.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "dev"
	// Commit is the git commit hash (set by build flags)
	Commit = "unknown"
	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"
)

// Info contains version and build information
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the version information
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a formatted version string
func (i Info) String() string {
	return i.Version
}

// Full returns a detailed version string with all build information
func (i Info) Full() string {
	return i.Version + " (" + i.Commit + ") built " + i.BuildDate + " " + i.GoVersion + " " + i.Platform
}

// CheckMinimum reports an error when the running compiler is older than
// minimum. Development builds satisfy every minimum.
func CheckMinimum(minimum string) error {
	return checkMinimum(Version, minimum)
}

func checkMinimum(current, minimum string) error {
	if minimum == "" {
		return nil
	}
	want, err := semver.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid min_compiler_version %q: %w", minimum, err)
	}
	if current == "dev" {
		return nil
	}
	have, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", current, err)
	}
	if have.LessThan(want) {
		return fmt.Errorf("configuration requires glyphc >= %s, running %s", want, have)
	}
	return nil
}
