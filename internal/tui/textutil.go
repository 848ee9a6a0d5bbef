package tui

import "github.com/mattn/go-runewidth"

const ellipsis = "…"

// truncateEnd shortens s to at most limit terminal cells, ending in an
// ellipsis when anything was cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return runewidth.Truncate(s, limit, ellipsis)
}

// truncateMiddle shortens s to at most limit cells, keeping both ends.
// Used for URLs where host and port both matter.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	if limit <= 1 {
		return ellipsis
	}

	keep := limit - runewidth.StringWidth(ellipsis)
	left := runewidth.Truncate(s, keep/2, "")

	r := []rune(s)
	right, width := len(r), 0
	for right > 0 {
		w := runewidth.RuneWidth(r[right-1])
		if width+w > keep-keep/2 {
			break
		}
		width += w
		right--
	}

	return left + ellipsis + string(r[right:])
}
