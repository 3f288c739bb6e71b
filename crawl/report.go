package crawl

import (
	"fmt"
	"net/url"
	"strings"
)

// Summary describes the result in one line, e.g.
// "Saved 3 pages (12.4 KB), 1 unchanged, 2 failed".
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Saved %d pages (%s)", r.Saved, formatBytes(r.Bytes))
	if r.Skipped > 0 {
		fmt.Fprintf(&b, ", %d unchanged", r.Skipped)
	}
	if r.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", r.Failed)
	}
	return b.String()
}

// TruncateURL shortens a URL for progress display. The scheme is dropped and
// the host and path are cut from the left, since the end of a path is what
// tells pages of one site apart.
func TruncateURL(rawURL string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		s = u.Host + u.EscapedPath()
		if u.RawQuery != "" {
			s += "?" + u.RawQuery
		}
	}

	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-maxLen+3:]
}

func formatBytes(n int) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
