package git

import (
	"bufio"
	"fmt"
	"strings"
)

// Ref is a reference advertised by a remote.
type Ref struct {
	Hash string
	Name string // e.g. "HEAD", "refs/heads/main", "refs/tags/v1^{}"
}

// IsBranch reports whether the ref is a branch head.
func (r Ref) IsBranch() bool {
	return strings.HasPrefix(r.Name, "refs/heads/")
}

// IsTag reports whether the ref is a tag, peeled or not.
func (r Ref) IsTag() bool {
	return strings.HasPrefix(r.Name, "refs/tags/")
}

// IsPeeled reports whether the ref is the commit an annotated tag points to.
func (r Ref) IsPeeled() bool {
	return strings.HasSuffix(r.Name, "^{}")
}

// Short returns the name without its refs/heads/ or refs/tags/ prefix.
func (r Ref) Short() string {
	name := strings.TrimPrefix(r.Name, "refs/heads/")
	return strings.TrimPrefix(name, "refs/tags/")
}

// ParseRefs parses git ls-remote output: one "<hash>\t<name>" per line.
// Blank lines are skipped.
func ParseRefs(output string) ([]Ref, error) {
	var refs []Ref

	scanner := bufio.NewScanner(strings.NewReader(output))
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		hash, name, ok := strings.Cut(text, "\t")
		if !ok || hash == "" || name == "" {
			return nil, fmt.Errorf("line %d: malformed ref %q", line, text)
		}
		refs = append(refs, Ref{Hash: hash, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// Branches returns the branch heads among refs.
func Branches(refs []Ref) []Ref {
	var out []Ref
	for _, r := range refs {
		if r.IsBranch() {
			out = append(out, r)
		}
	}
	return out
}
