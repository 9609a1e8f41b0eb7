package ocr

import "github.com/dgallion1/formgest/internal/layout"

// TaggedPrompt asks for a [HEADER] section followed by a [BODY] section of
// Label: Value lines.
const TaggedPrompt = `Perform OCR on this form. Respond in exactly this format:
[HEADER]
(All header text in reading order: institution name, logo text, address, phone.)
[BODY]
(Every form entry, one per line, as 'Label: Value'. Remove dotted filler lines such as '....'.
Write checkboxes as [ ] when empty and [X] when ticked. Write a section heading with no value as 'HEADING:'.)
IMPORTANT: Do not add any opening or closing commentary.`

// MarkdownPrompt asks for plain text with pipe-delimited tables.
const MarkdownPrompt = `Perform OCR on this document and transcribe all of its text in reading order.
Write every table as a Markdown table: one row per line, cells separated by '|', with a '---' separator row under the header.
Do not transcribe application menus, toolbars, ribbons or window titles.
Do not add any opening or closing commentary and do not wrap the output in a code block.`

// PromptFor returns the instructional prompt for a reconstruction mode.
func PromptFor(mode layout.Mode) string {
	if mode == layout.ModeMarkdown {
		return MarkdownPrompt
	}
	return TaggedPrompt
}
