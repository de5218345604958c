package diag

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ansiRed   = "\x1b[31;1m"
	ansiReset = "\x1b[0m"
)

// Print writes every diagnostic to w, in the order given, each followed by
// the offending source line and a caret under the reported column. file
// must be the same path the diagnostics' positions were computed against;
// if it cannot be reopened, the line/caret are silently omitted.
func Print(w io.Writer, file string, diags []Diagnostic) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	for _, d := range diags {
		printOne(w, file, d, color)
	}
}

func printOne(w io.Writer, file string, d Diagnostic, color bool) {
	if color {
		fmt.Fprintf(w, "%s%s: %s%s: %s\n", ansiRed, d.Pos, d.Kind, ansiReset, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", d.Pos, d.Kind, d.Message)
	}
	line, ok := readLine(file, d.Pos.Line)
	if !ok {
		return
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, caretUnder(d.Pos.Col))
}

// readLine reopens file and returns its lineno'th line (1-indexed), without
// the trailing newline.
func readLine(file string, lineno int) (string, bool) {
	f, err := os.Open(file)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		if n == lineno {
			return scanner.Text(), true
		}
	}
	return "", false
}

// caretUnder renders a run of spaces up to the reported column followed by
// a single '^'. Column counting treats every rune, tabs included, as one
// column wide, matching internal/lexer's column tracking.
func caretUnder(col int) string {
	n := col - 1
	if n < 0 {
		n = 0
	}
	b := make([]byte, n, n+1)
	for i := range b {
		b[i] = ' '
	}
	return string(b) + "^"
}
