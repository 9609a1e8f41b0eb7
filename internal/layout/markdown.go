package layout

import "strings"

// markdownBuilder reconstructs free text mixed with pipe-delimited tables.
type markdownBuilder struct {
	opts Options
}

func (b *markdownBuilder) Build(raw string) []Element {
	var elements []Element
	lines := prepare(raw, b.opts)

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			i++
		case isTableLine(line):
			var table Table
			table, i = collectTable(lines, i)
			// A run made only of separator lines has no rows to show.
			if len(table.Rows) > 0 {
				elements = append(elements, table)
			}
		case b.isNoise(line):
			i++
		default:
			elements = append(elements, PlainText{Content: line})
			i++
		}
	}
	return elements
}

func (b *markdownBuilder) isNoise(line string) bool {
	for _, k := range b.opts.NoiseKeywords {
		if k != "" && strings.Contains(line, k) {
			return true
		}
	}
	return false
}

// collectTable consumes the maximal run of table lines starting at start
// and returns the table with the index of the first line after the run.
func collectTable(lines []string, start int) (Table, int) {
	var table Table
	i := start
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !isTableLine(line) {
			break
		}
		if isSeparatorLine(line) {
			continue
		}
		table.Rows = append(table.Rows, splitRow(line))
	}
	return table, i
}

// isTableLine reports whether line has at least two pipes.
func isTableLine(line string) bool {
	return strings.Count(line, "|") >= 2
}

// isSeparatorLine reports whether line is made only of '|', '-', ':' and
// spaces. Anything else, even one stray character, makes it a data row.
func isSeparatorLine(line string) bool {
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ':
		default:
			return false
		}
	}
	return true
}

// splitRow splits a table line into trimmed cells. Only the empty piece
// an outer pipe leaves at each edge is dropped, so a blank corner cell
// keeps its column.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	start, end := 0, len(parts)
	if start < end && parts[start] == "" {
		start++
	}
	if end > start && parts[end-1] == "" {
		end--
	}
	return parts[start:end]
}
