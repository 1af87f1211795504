package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/maloquacious/apprater/internal/rater"
)

// terminalPresenter shows the rating dialog on a terminal and reads one answer.
// An empty line, "q" or end of input dismisses the dialog.
type terminalPresenter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPresenter(in io.Reader, out io.Writer) *terminalPresenter {
	return &terminalPresenter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPresenter) Present(ctx context.Context, d *rater.Dialog) error {
	fmt.Fprintf(p.out, "\n%s\n\n%s\n\n", d.Title, d.Message)
	for i, b := range d.Buttons {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, b.Label)
	}
	fmt.Fprint(p.out, "> ")

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" || strings.EqualFold(answer, "q") {
		fmt.Fprintln(p.out, "dismissed")
		return nil
	}

	r, ok := matchButton(d.Buttons, answer)
	if !ok {
		fmt.Fprintf(p.out, "unknown choice %q, dismissed\n", answer)
		return nil
	}
	return d.Choose(ctx, r)
}

// matchButton accepts a 1-based index or a case-insensitive label.
func matchButton(buttons []rater.Button, answer string) (rater.Response, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(buttons) {
			return buttons[n-1].Response, true
		}
		return 0, false
	}
	for _, b := range buttons {
		if strings.EqualFold(b.Label, answer) {
			return b.Response, true
		}
	}
	return 0, false
}
