package definition

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Parse reads definition lines from r, returning every entry that parses.
// Malformed lines are logged and dropped; only a read error aborts, and it
// still returns the entries collected before the failure.
func (p *Parser) Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		entry, err := p.ParseLine(scanner.Text())
		switch {
		case err == nil:
			entries = append(entries, entry)
		case errors.Is(err, ErrNotSequence):
			// Comments, blanks, include directives.
		default:
			p.log.Debugw("Skipping definition line", "line", lineno, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("scanning definitions: %w", err)
	}
	return entries, nil
}

// ParseFile reads one definition file. The open error comes back as-is so
// callers can distinguish a missing file from a malformed one.
func (p *Parser) ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := p.Parse(f)
	if err != nil {
		return entries, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}
