package sources

import (
	"bufio"
	"os"
	"strings"
)

// ExtractID returns the spreadsheet id embedded in a document link: the text
// between "/d/" and the next "/". A reference without "/d/" is returned trimmed.
func ExtractID(link string) string {
	link = strings.TrimSpace(link)
	start := strings.Index(link, "/d/")
	if start < 0 {
		return link
	}
	rest := link[start+len("/d/"):]
	if end := strings.Index(rest, "/"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// ReadLinks reads one reference per line, ignoring blank lines and # comments.
func ReadLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return links, nil
}
