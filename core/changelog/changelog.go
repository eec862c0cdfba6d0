package changelog

import (
	"regexp"
	"strings"
)

var (
	separatorRegex = regexp.MustCompile(`-{10,}`)
	versionRegex   = regexp.MustCompile(`^Version:\s*(\S+)\s*$`)
	dateRegex      = regexp.MustCompile(`^Date:\s*(.*?)\s*$`)
	// A heading owns its whole line; "Info: text" stays a body line.
	headingRegex   = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*):$`)
)

// Section is one named group of change lines, e.g. "Bugfixes".
type Section struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// Entry is a single version block of a changelog.
type Entry struct {
	Version string `json:"version"`
	// Date is kept as written; it is not guaranteed to be a parseable timestamp.
	Date string `json:"date"`
	// Sections preserves heading order from the source text.
	Sections []Section `json:"sections"`
	// Raw is the unprocessed body below the Date line.
	Raw string `json:"raw"`
}

// Section returns the lines of the named section, or nil.
func (e Entry) Section(name string) []string {
	for _, s := range e.Sections {
		if s.Name == name {
			return s.Lines
		}
	}
	return nil
}

// Changes flattens the sections into a heading -> lines map.
func (e Entry) Changes() map[string][]string {
	out := make(map[string][]string, len(e.Sections))
	for _, s := range e.Sections {
		out[s.Name] = s.Lines
	}
	return out
}

// Parse splits text into entries. Blocks are separated by runs of ten or more
// dashes. A block must start with a "Version:" line followed by a "Date:" line;
// blocks that do not are dropped without failing the rest of the parse.
func Parse(text string) []Entry {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var entries []Entry
	for _, block := range separatorRegex.Split(text, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if entry, ok := parseBlock(block); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func parseBlock(block string) (Entry, bool) {
	lines := strings.Split(strings.Trim(block, "\n"), "\n")

	// Skip leading blank lines before the Version line.
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i+1 >= len(lines) {
		return Entry{}, false
	}

	vm := versionRegex.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if vm == nil {
		return Entry{}, false
	}
	dm := dateRegex.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
	if dm == nil {
		return Entry{}, false
	}

	body := lines[i+2:]
	entry := Entry{
		Version:  vm[1],
		Date:     dm[1],
		Sections: parseSections(body),
		Raw:      strings.TrimRight(strings.Join(body, "\n"), " \n"),
	}
	return entry, true
}

func parseSections(body []string) []Section {
	var sections []Section
	current := -1

	for _, line := range body {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if hm := headingRegex.FindStringSubmatch(line); hm != nil {
			sections = append(sections, Section{Name: hm[1], Lines: []string{}})
			current = len(sections) - 1
			continue
		}
		if current < 0 {
			// Lines before the first heading only survive in Raw.
			continue
		}
		sections[current].Lines = append(sections[current].Lines, stripBullet(line))
	}
	return sections
}

func stripBullet(line string) string {
	if strings.HasPrefix(line, "-") {
		return strings.TrimSpace(line[1:])
	}
	return line
}
