// Package release generates semantic-release configuration from the current
// git branch: a release channel is derived from the branch name, and the
// branch list in the emitted .releaserc registers non-main branches as
// prerelease channels.
package release

import (
	"os/exec"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// MainBranch is the branch that produces stable releases
const MainBranch = "main"

var (
	// segmentPattern extracts the penultimate path segment of a branch name,
	// e.g. feature/foo-bar/baz yields foo-bar
	segmentPattern = regexp.MustCompile(`^.*/([^/]*)/.*$`)

	// channelInvalid matches every character not allowed in a channel name
	channelInvalid = regexp.MustCompile(`[^a-z0-9.-]`)
)

// DeriveChannel converts a branch name into a prerelease channel identifier:
// lowercase, the inner path segment when the name has one, and only
// characters from [a-z0-9.-]. Branch names with no valid characters degrade
// to an empty channel; no validation is performed.
func DeriveChannel(branch string) string {
	channel := strings.ToLower(branch)

	if m := segmentPattern.FindStringSubmatch(channel); m != nil {
		channel = m[1]
	}

	return channelInvalid.ReplaceAllString(channel, "")
}

// CurrentBranch returns the checked-out branch name from git
func CurrentBranch() (string, error) {
	out, err := exec.Command("git", "branch", "--show-current").Output()
	if err != nil {
		return "", goerr.Wrap(err, "reading current git branch")
	}
	return strings.TrimSpace(string(out)), nil
}
