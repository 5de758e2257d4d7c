package fetchclient

import (
	"io"
	"regexp"
	"strings"
)

// hrefPattern extracts link targets from an HTML directory index.
var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

// parseListing extracts the file entries of a remote directory index.
// Subdirectories, parent links and absolute URLs are skipped; only plain
// file names are returned, in page order.
func parseListing(r io.Reader) ([]string, error) {
	page, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var entries []string
	for _, m := range hrefPattern.FindAllStringSubmatch(string(page), -1) {
		target := m[1]
		if strings.HasSuffix(target, "/") || strings.Contains(target, "://") {
			continue
		}
		if strings.HasPrefix(target, "?") || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "..") {
			continue
		}
		entries = append(entries, target)
	}
	return entries, nil
}
