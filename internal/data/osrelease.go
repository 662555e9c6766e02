package data

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// OSReleasePath is where the distribution identification file lives.
const OSReleasePath = "/etc/os-release"

// OSRelease holds the fields of os-release(5) used for distro detection.
type OSRelease struct {
	ID     string
	IDLike []string
	Name   string
}

// ReadOSRelease parses path. A missing file yields an empty OSRelease.
func ReadOSRelease(path string) OSRelease {
	f, err := os.Open(path)
	if err != nil {
		return OSRelease{}
	}
	defer f.Close()
	return ParseOSRelease(f)
}

// ParseOSRelease reads KEY=value lines. Quotes around values are stripped.
func ParseOSRelease(r io.Reader) OSRelease {
	var rel OSRelease
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		k, v, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || strings.HasPrefix(k, "#") {
			continue
		}
		v = strings.Trim(strings.TrimSpace(v), `"'`)
		switch k {
		case "ID":
			rel.ID = strings.ToLower(v)
		case "ID_LIKE":
			rel.IDLike = strings.Fields(strings.ToLower(v))
		case "NAME":
			rel.Name = v
		}
	}
	return rel
}

// Candidates lists distro keys to try, most specific first.
func (r OSRelease) Candidates() []string {
	var out []string
	if r.ID != "" {
		out = append(out, r.ID)
	}
	return append(out, r.IDLike...)
}
