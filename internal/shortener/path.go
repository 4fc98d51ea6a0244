package shortener

import (
	"fmt"
	"strings"
)

// ExtractPath returns the segment after the third slash of a short URL,
// e.g. "bef" for "http://short.ly/bef". The URL is not otherwise validated.
func ExtractPath(shortURL string) (string, error) {
	fields := strings.Split(shortURL, "/")
	if len(fields) < 4 {
		return "", fmt.Errorf("%w: short url %q has no path segment", ErrInvalidArgument, shortURL)
	}
	return fields[3], nil
}
