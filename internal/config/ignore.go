// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "regexp"

// defaultIgnores match messages git and hosting services generate: merges, reverts and
// autosquash markers. Disable them with defaultIgnores: false.
var defaultIgnores = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^((Merge pull request)|(Merge (.*?) into (.*?)|(Merge branch (.*?)))(?:\r?\n)*$)`),
	regexp.MustCompile(`(?m)^(Merge tag (.*?))(?:\r?\n)*$`),
	regexp.MustCompile(`^(R|r)evert (.*)`),
	regexp.MustCompile(`^(amend|fixup|squash)!`),
	regexp.MustCompile(`^(Merged (.*?)(in|into) (.*)|Merged PR (.*): (.*))`),
	regexp.MustCompile(`^Merge remote-tracking branch(\s*)(.*)`),
	regexp.MustCompile(`^Automatic merge(.*)`),
	regexp.MustCompile(`^Auto-merged (.*?) into (.*)`),
}
