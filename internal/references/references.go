// Package references extracts structured issue, pull request and file
// references from free-form message text. Extraction is pure: no I/O, no
// shared state, and the result preserves left-to-right match order.
package references

import (
	"regexp"
	"sort"
	"strconv"
)

// Kind discriminates the Reference union.
type Kind int

const (
	// KindIssue is an issue or pull request reference, e.g. "#42" or "foo#7".
	KindIssue Kind = iota
	// KindFile is a GitHub blob URL with a line anchor.
	KindFile
)

// IssueRef points at an issue or pull request by number. Alias is the
// optional repository token in front of the '#'; empty means the default
// repository.
type IssueRef struct {
	Alias  string
	Number int
}

// FileRef points at a line range inside a file at a specific git ref.
// End is 0 when the anchor carries no range suffix.
type FileRef struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
	Start int
	End   int
}

// Reference is the tagged union of the two reference kinds.
type Reference struct {
	Kind  Kind
	Issue IssueRef
	File  FileRef
}

var (
	issuePattern = regexp.MustCompile(` ?([a-zA-Z0-9-_.]+)?#([0-9]+) ?`)
	filePattern  = regexp.MustCompile(`https://github\.com/(.+?)/(.+?)/blob/(.+?)/(.+?)#L([0-9]+)(?:-L([0-9]+))?`)
)

// Extract scans text and returns every reference in the order it appears.
// An empty result means the caller can skip all downstream work.
//
// File URL matches are excised from the text before the issue scan runs, so
// the "#L10" anchor of a blob URL can never double as an issue reference.
func Extract(text string) []Reference {
	type located struct {
		offset int
		ref    Reference
	}

	var found []located

	masked := []byte(text)
	for _, m := range filePattern.FindAllStringSubmatchIndex(text, -1) {
		ref := Reference{Kind: KindFile, File: FileRef{
			Owner: text[m[2]:m[3]],
			Repo:  text[m[4]:m[5]],
			Ref:   text[m[6]:m[7]],
			Path:  text[m[8]:m[9]],
			Start: mustInt(text[m[10]:m[11]]),
		}}
		if m[12] >= 0 {
			ref.File.End = mustInt(text[m[12]:m[13]])
		}
		found = append(found, located{offset: m[0], ref: ref})

		for i := m[0]; i < m[1]; i++ {
			masked[i] = ' '
		}
	}

	for _, m := range issuePattern.FindAllSubmatchIndex(masked, -1) {
		if m[4] < 0 {
			continue
		}
		ref := Reference{Kind: KindIssue, Issue: IssueRef{
			Number: mustInt(string(masked[m[4]:m[5]])),
		}}
		if m[2] >= 0 {
			ref.Issue.Alias = string(masked[m[2]:m[3]])
		}
		found = append(found, located{offset: m[0], ref: ref})
	}

	if len(found) == 0 {
		return nil
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	refs := make([]Reference, len(found))
	for i, f := range found {
		refs[i] = f.ref
	}
	return refs
}

func mustInt(s string) int {
	// The pattern only captures digit runs, so this cannot fail on
	// anything short of an overflow, which we treat as 0.
	n, _ := strconv.Atoi(s)
	return n
}
