package engine

import "regexp"

// fastForwardPattern matches git's report that the local branch trails its
// upstream by a positive number of commits and has not diverged.
var fastForwardPattern = regexp.MustCompile(`Your branch is behind .*? by 0*[1-9][0-9]* commits?, and can be fast-forwarded`)

// IsPullEligible reports whether the output of `git status` shows a branch
// that can be fast-forwarded to its upstream. Empty or unrecognized text is
// not eligible.
func IsPullEligible(status string) bool {
	return fastForwardPattern.MatchString(status)
}
