package expr

import "strings"

// ActiveExpression determines whether a cursor position sits inside an
// open placeholder. It scans backward from the cursor for the nearest
// opening delimiter that has no closer between it and the cursor.
//
// On a hit it returns the offset of the opening delimiter and the
// filter substring (the trimmed text between the delimiter and the
// cursor) used to narrow upstream candidates.
func ActiveExpression(text string, cursor int) (start int, filter string, ok bool) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	before := text[:cursor]

	open := strings.LastIndex(before, Open)
	if open < 0 {
		return 0, "", false
	}
	if strings.Contains(before[open+len(Open):], Close) {
		return 0, "", false
	}
	return open, strings.TrimSpace(before[open+len(Open) : cursor]), true
}

// Insert applies a chosen candidate expression to the text at the
// cursor.
//
// Inside an open placeholder, the span from the opening delimiter
// through the cursor is replaced by the candidate's full {{...}} text;
// if a closer sits immediately after the cursor it is consumed too.
// Outside any open placeholder the candidate is inserted literally at
// the cursor.
//
// Returns the edited text and the new cursor position (just past the
// inserted candidate).
func Insert(text string, cursor int, candidate string) (string, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	start, _, inside := ActiveExpression(text, cursor)
	if !inside {
		return text[:cursor] + candidate + text[cursor:], cursor + len(candidate)
	}

	end := cursor
	if strings.HasPrefix(text[cursor:], Close) {
		end = cursor + len(Close)
	}
	return text[:start] + candidate + text[end:], start + len(candidate)
}
