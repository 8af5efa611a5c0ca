package menu

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bladeengine/bladegen/internal/generator"
	"github.com/bladeengine/bladegen/internal/scaffold"
)

//go:embed banner.txt
var banner string

const (
	SelectPrompt = "Select a template or type 0 to quit: "
	NamePrompt   = "Project Name: "
	QuitMessage  = "Quit Project Generator"
)

// Entry is one line of the menu.
type Entry struct {
	Selector string
	Title    string
}

// Result holds what the user typed.
type Result struct {
	Selection string
	Name      string
	// Quit is true when the selection was the quit key or matched no entry.
	// Name is not read in that case.
	Quit bool
}

// Entries builds the menu from the built-in templates, followed by the quit
// entry.
func Entries(templates []*scaffold.Template) []Entry {
	entries := make([]Entry, 0, len(templates)+1)
	for _, t := range templates {
		entries = append(entries, Entry{Selector: t.Manifest.Selector, Title: t.Manifest.Title})
	}
	return append(entries, Entry{Selector: generator.QuitSelector, Title: "QUIT"})
}

// Banner returns the ASCII title.
func Banner() string { return banner }

// Render writes the banner and the boxed menu to w.
func Render(w io.Writer, entries []Entry) {
	fmt.Fprint(w, banner)

	labels := make([]string, len(entries))
	width := len("- MENU -")
	for i, e := range entries {
		labels[i] = fmt.Sprintf("(%s) - %s", e.Selector, e.Title)
		if len(labels[i]) > width {
			width = len(labels[i])
		}
	}
	width += 4

	const indent = "                "
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s - MENU %s\n", indent, strings.Repeat("-", width-7))
	for _, l := range labels {
		fmt.Fprintf(w, "%s| %-*s |\n", indent, width-2, l)
	}
	fmt.Fprintf(w, "%s %s\n\n", indent, strings.Repeat("-", width))
}

// Prompt asks for a selector and, unless the user quits, a project name.
// End of input at the selector prompt counts as quitting; at the name prompt
// it yields an empty Name, which generation rejects as invalid input.
func Prompt(r io.Reader, w io.Writer, entries []Entry) (*Result, error) {
	reader := bufio.NewReader(r)

	fmt.Fprint(w, SelectPrompt)
	selection, err := readLine(reader)
	if errors.Is(err, io.EOF) {
		return &Result{Quit: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading selection: %w", err)
	}

	res := &Result{Selection: selection}
	if selection == generator.QuitSelector || !known(entries, selection) {
		res.Quit = true
		return res, nil
	}

	fmt.Fprint(w, NamePrompt)
	name, err := readLine(reader)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading project name: %w", err)
	}
	res.Name = name
	return res, nil
}

func known(entries []Entry, selection string) bool {
	for _, e := range entries {
		if e.Selector == selection && e.Selector != generator.QuitSelector {
			return true
		}
	}
	return false
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as is; io.EOF is only reported when nothing
// was read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
