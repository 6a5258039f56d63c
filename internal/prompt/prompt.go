// Package prompt asks the create questions through numbered menus on a plain
// reader/writer pair, so it works in any terminal and in tests. Answering
// "q" or closing input cancels with ErrCancelled.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user quits a prompt.
var ErrCancelled = errors.New("operation cancelled")

// Prompter reads answers from r and writes questions to w.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// New returns a Prompter over r and w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// readLine returns the next trimmed line. EOF and "q" cancel.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "q" {
		return "", ErrCancelled
	}
	return line, nil
}

// Input asks a free-form question. An empty answer yields def.
func (p *Prompter) Input(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s (%s): ", question, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", question)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// ProjectName asks for the project directory name until a non-empty answer
// is given.
func (p *Prompter) ProjectName(def string) (string, error) {
	for {
		name, err := p.Input("Project name", def)
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
		fmt.Fprintln(p.w, "Project name cannot be empty.")
	}
}

// Select shows a numbered menu and returns the chosen index.
func (p *Prompter) Select(question string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("nothing to choose from for %q", question)
	}

	fmt.Fprintf(p.w, "\n%s\n", question)
	for i, item := range items {
		fmt.Fprintf(p.w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(p.w, "Enter number [1-%d]: ", len(items))

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(items))
	}
	return num - 1, nil
}

// MultiSelect shows a numbered menu and returns the chosen indexes in menu
// order. Numbers may be separated by commas or spaces; "all" picks every
// item and an empty answer picks none.
func (p *Prompter) MultiSelect(question string, items []string) ([]int, error) {
	if len(items) == 0 {
		return nil, nil
	}

	fmt.Fprintf(p.w, "\n%s\n", question)
	for i, item := range items {
		fmt.Fprintf(p.w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(p.w, "Enter numbers separated by spaces, \"all\", or leave empty for none: ")

	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	return parseIndexes(line, len(items))
}

func parseIndexes(line string, n int) ([]int, error) {
	if strings.EqualFold(line, "all") {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	chosen := make([]bool, n)
	for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
		num, err := strconv.Atoi(field)
		if err != nil || num < 1 || num > n {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", field, n)
		}
		chosen[num-1] = true
	}

	var out []int
	for i, ok := range chosen {
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// Confirm asks a yes/no question. An empty answer yields def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.w, "%s [%s]: ", question, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: expected y or n", line)
	}
}
