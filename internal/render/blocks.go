package render

import "strings"

// ContentBlocks renders free-form sheet text as a sequence of markup
// blocks. Lines starting with "- " or "* " group into a <ul>; a blank
// line or a plain line closes the open list; every other line becomes a
// <p>. All lines pass through EmphasizeNumbers, so the result is fully
// escaped and safe to splice into the document.
func ContentBlocks(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	var blocks []string
	listOpen := false
	closeList := func() {
		if listOpen {
			blocks = append(blocks, "</ul>")
			listOpen = false
		}
	}

	for _, original := range lines {
		line := strings.TrimSpace(original)
		if line == "" {
			closeList()
			continue
		}
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			item := EmphasizeNumbers(strings.TrimSpace(line[2:]))
			if !listOpen {
				blocks = append(blocks, "<ul>")
				listOpen = true
			}
			blocks = append(blocks, "<li>"+item+"</li>")
			continue
		}
		closeList()
		blocks = append(blocks, "<p>"+EmphasizeNumbers(line)+"</p>")
	}
	closeList()

	return strings.Join(blocks, "\n")
}
