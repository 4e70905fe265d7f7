package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	raw := "feat: add thing\n\nbody\n# Please enter the commit message\n#\tmodified: x.go\n"
	assert.Equal(t, "feat: add thing\n\nbody", StripComments(raw, ""))
}

func TestStripComments_Scissors(t *testing.T) {
	raw := "fix: x\n\n# " + Scissors + "\n# Do not modify or remove the line above.\ndiff --git a/x b/x\n"
	assert.Equal(t, "fix: x", StripComments(raw, "#"))
}

func TestStripComments_CustomChar(t *testing.T) {
	raw := "fix: x\n\n#123 is kept\n; comment\r\n"
	assert.Equal(t, "fix: x\n\n#123 is kept", StripComments(raw, ";"))
}
