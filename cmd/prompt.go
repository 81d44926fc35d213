package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// isTerminal checks if stdin is connected to a terminal (interactive mode)
func isTerminal() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// prompt prints label and reads one trimmed line from stdin. Returns the
// empty string on read failure or when stdin is not a terminal.
func prompt(label string) string {
	if !isTerminal() {
		return ""
	}
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptYes asks a y/n question and reports whether the answer was yes.
func promptYes(label string) bool {
	return strings.EqualFold(prompt(label), "y")
}
