package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	debugMode   bool
	debugLogger = log.New(io.Discard, "", 0)
)

// Init enables or disables debug logging. A nil writer logs to stderr so
// diagnostics never mix with the report on stdout.
func Init(debug bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	debugMode = debug
	debugLogger = log.New(w, "[DEBUG] ", log.Ldate|log.Ltime|log.Lshortfile)
}

// Debug prints debug messages if debug mode is enabled
func Debug(format string, v ...interface{}) {
	if debugMode {
		debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}
