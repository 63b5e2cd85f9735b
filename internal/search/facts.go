package search

import (
	"bufio"
	"bytes"
	"os"
	"strings"
)

// ExtractFactsFromFile reads the Markdown knowledge base at path and returns
// its facts. See ExtractFacts for the extraction rules.
func ExtractFactsFromFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractFacts(b)
}

// ExtractFacts turns a Markdown knowledge base into standalone fact strings:
//
//   - "#"-headings open a section; the heading text is prefixed to every fact
//     of that section ("Fever: rest and fluids help ...") so queries naming
//     the symptom match its facts.
//   - Bullet markers ("-", "*") are stripped.
//   - Table rows ("| ... |") are flattened into one fact per row, with
//     separator rows and header-only rows skipped.
//   - Blank lines and bare heading lines emit nothing themselves.
func ExtractFacts(md []byte) ([]string, error) {
	sc := bufio.NewScanner(bytes.NewReader(md))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var facts []string
	section := ""

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "text") {
			return
		}
		if section != "" {
			s = section + ": " + s
		}
		facts = append(facts, s)
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			section = strings.TrimSpace(strings.TrimLeft(line, "# "))
			continue
		}

		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			cols := strings.Split(strings.Trim(line, "|"), "|")
			allSep := true
			cleaned := make([]string, 0, len(cols))
			for _, c := range cols {
				cell := strings.TrimSpace(c)
				if cell != "" {
					cleaned = append(cleaned, cell)
				}
				tmp := strings.ReplaceAll(cell, ":", "")
				tmp = strings.ReplaceAll(tmp, "-", "")
				if strings.TrimSpace(tmp) != "" {
					allSep = false
				}
			}
			if allSep || len(cleaned) == 0 {
				continue
			}
			add(strings.Join(cleaned, " "))
			continue
		}

		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return facts, nil
}
