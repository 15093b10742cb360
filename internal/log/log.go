package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

// Out represents the writer to print the log messages to.
// This is used for tests.
var Out io.Writer = os.Stdout

var tWidth int

func init() {
	var err error
	tWidth, _, err = terminal.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		tWidth, _, err = terminal.GetSize(int(os.Stderr.Fd()))
		if err != nil {
			tWidth = 80
		}
	}
}

func Info(a ...interface{}) {
	fmt.Fprint(Out, a...)
}

func Infoln(a ...interface{}) {
	fmt.Fprintln(Out, a...)
}

func Infof(format string, a ...interface{}) {
	fmt.Fprintf(Out, format, a...)
}

func Warningln(a ...interface{}) {
	fmt.Fprintln(Out, a...)
}

func Errorln(a ...interface{}) {
	fmt.Fprintln(Out, a...)
}

// Separator returns a horizontal line spanning the terminal, at most
// 80 characters wide.
func Separator() string {
	width := tWidth
	if width <= 0 || width > 80 {
		width = 80
	}
	return strings.Repeat("-", width)
}
