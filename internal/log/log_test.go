package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	orig := Out
	defer func() { Out = orig }()

	var buf bytes.Buffer
	Out = &buf

	Info("a", "b")
	Infoln("c")
	Infof("%d\n", 4)
	Warningln("w")
	Errorln("e")

	assert.Equal(t, "abc\n4\nw\ne\n", buf.String())
}

func TestSeparator(t *testing.T) {
	orig := tWidth
	defer func() { tWidth = orig }()

	tWidth = 20
	assert.Len(t, Separator(), 20)

	tWidth = 200
	assert.Len(t, Separator(), 80)

	tWidth = 0
	assert.Len(t, Separator(), 80)
}

func TestColors(t *testing.T) {
	assert.Equal(t, "\033[1mx\033[0m", Bold("x"))
	assert.Equal(t, "\033[32mx\033[0m", Green("x"))
}
