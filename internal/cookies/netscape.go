package cookies

import (
	"bufio"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseNetscape parses the Netscape cookies.txt format understood by the
// downloader binary. Format: domain flag path secure expiration name value.
// Malformed lines are skipped rather than rejected, matching the tolerant
// behavior of the tools that consume these files.
func ParseNetscape(r io.Reader) ([]*http.Cookie, error) {
	var parsed []*http.Cookie
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}

		expires, _ := strconv.ParseInt(fields[4], 10, 64)
		parsed = append(parsed, &http.Cookie{
			Domain:  fields[0],
			Path:    fields[2],
			Secure:  strings.EqualFold(fields[3], "TRUE"),
			Expires: time.Unix(expires, 0),
			Name:    fields[5],
			Value:   fields[6],
		})
	}

	return parsed, scanner.Err()
}
