package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/reusee/armplan/cmds"
)

var logFile = cmds.Var[string]("-log-file", "append logs to a file instead of stderr")

type Writer io.Writer

// Writer is stderr unless -log-file is given.
func (Module) Writer() Writer {
	if *logFile == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		return os.Stderr
	}
	return f
}
