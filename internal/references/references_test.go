package references

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIssueRefs(t *testing.T) {
	refs := Extract("see #42 and foo#7")

	require.Len(t, refs, 2)

	assert.Equal(t, KindIssue, refs[0].Kind)
	assert.Equal(t, IssueRef{Number: 42}, refs[0].Issue)

	assert.Equal(t, KindIssue, refs[1].Kind)
	assert.Equal(t, IssueRef{Alias: "foo", Number: 7}, refs[1].Issue)
}

func TestExtractFileRef(t *testing.T) {
	refs := Extract("https://github.com/acme/widgets/blob/main/src/lib.rs#L10-L12")

	require.Len(t, refs, 1)
	assert.Equal(t, KindFile, refs[0].Kind)
	assert.Equal(t, FileRef{
		Owner: "acme",
		Repo:  "widgets",
		Ref:   "main",
		Path:  "src/lib.rs",
		Start: 10,
		End:   12,
	}, refs[0].File)
}

func TestExtractFileRefWithoutRange(t *testing.T) {
	refs := Extract("https://github.com/acme/widgets/blob/v1.2/README.md#L3")

	require.Len(t, refs, 1)
	assert.Equal(t, 3, refs[0].File.Start)
	assert.Equal(t, 0, refs[0].File.End)
}

func TestExtractPreservesMatchOrder(t *testing.T) {
	text := "#5 then https://github.com/a/b/blob/main/x.go#L1 then bar#9"
	refs := Extract(text)

	require.Len(t, refs, 3)
	assert.Equal(t, KindIssue, refs[0].Kind)
	assert.Equal(t, 5, refs[0].Issue.Number)
	assert.Equal(t, KindFile, refs[1].Kind)
	assert.Equal(t, KindIssue, refs[2].Kind)
	assert.Equal(t, "bar", refs[2].Issue.Alias)
}

func TestExtractFileURLDoesNotLeakIssueRef(t *testing.T) {
	// The "#L10" anchor must not be re-matched as an issue reference, and
	// neither must any part of the path.
	refs := Extract("https://github.com/acme/widgets/blob/main/src/lib.rs#L10")

	require.Len(t, refs, 1)
	assert.Equal(t, KindFile, refs[0].Kind)
}

func TestExtractNoReferences(t *testing.T) {
	assert.Empty(t, Extract("nothing to see here"))
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("issue # 42 has a space"))
	assert.Empty(t, Extract("#L10 is not an issue"))
}

func TestExtractAliasCharset(t *testing.T) {
	refs := Extract("my.re-po_2#14")

	require.Len(t, refs, 1)
	assert.Equal(t, "my.re-po_2", refs[0].Issue.Alias)
	assert.Equal(t, 14, refs[0].Issue.Number)
}
