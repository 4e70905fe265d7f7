// SPDX-License-Identifier: AGPL-3.0-or-later

package message

import "strings"

// Scissors is the line git writes above the diff in verbose commits; it and everything below
// it are not part of the message.
const Scissors = "------------------------ >8 ------------------------"

// StripComments removes the lines git adds to a message being edited: lines starting with
// commentChar and everything from the scissors line on. An empty commentChar means "#".
func StripComments(raw, commentChar string) string {
	if commentChar == "" {
		commentChar = "#"
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, commentChar) {
			if strings.Contains(line, Scissors) {
				break
			}
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}
