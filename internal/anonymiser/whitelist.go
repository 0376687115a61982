package anonymiser

import (
	"bufio"
	"os"
	"strings"
)

// WhitelistStore reads the user-curated set of names that must never be
// masked. The file holds one name per line; blank lines and lines starting
// with '#' are ignored.
type WhitelistStore struct {
	Path string
}

// Load returns the whitelist as an upper-cased set. Any read failure,
// including the file simply not existing yet, yields an empty set rather
// than an error: anonymisation must never be blocked by a storage fault.
func (s *WhitelistStore) Load() map[string]bool {
	set := make(map[string]bool)
	if s == nil || s.Path == "" {
		return set
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return set
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToUpper(line)] = true
	}
	return set
}
