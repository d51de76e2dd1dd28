package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionLineCap(t *testing.T) {
	body := strings.Repeat("line\n", 40)

	got := Description(body)

	assert.Len(t, strings.Split(got, "\n"), MaxBodyLines)
}

func TestDescriptionLengthBound(t *testing.T) {
	// A single enormous line passes the line cap untouched and must be cut
	// by the length cap instead.
	body := strings.Repeat("x", MaxEmbedBody*2)

	got := Description(body)

	assert.Len(t, got, MaxEmbedBody)
}

func TestDescriptionEmptyBody(t *testing.T) {
	assert.Equal(t, "", Description(""))
}

func TestTruncateRuneSafe(t *testing.T) {
	got := Truncate("héllo", 2)

	assert.Equal(t, "hé", got)
}

func TestTrimIndent(t *testing.T) {
	lines := []string{
		"    func main() {",
		"        run()",
		"    }",
	}

	got := TrimIndent(lines)

	assert.Equal(t, "func main() {\n    run()\n}", got)
}

func TestTrimIndentIgnoresBlankLines(t *testing.T) {
	lines := []string{
		"    a",
		"",
		"    b",
	}

	got := TrimIndent(lines)

	assert.Equal(t, "a\n\nb", got)
}

func TestTrimIndentIdempotent(t *testing.T) {
	lines := []string{
		"  if ok {",
		"    return",
		"  }",
	}

	once := TrimIndent(lines)
	twice := TrimIndent(strings.Split(once, "\n"))

	assert.Equal(t, once, twice)
}

func TestTrimIndentAllBlank(t *testing.T) {
	assert.Equal(t, "\n", TrimIndent([]string{"", ""}))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "rs", Extension("src/lib.rs"))
	assert.Equal(t, "go", Extension("main.go"))
	assert.Equal(t, "", Extension("Makefile"))
}

func TestCodeBlockBounded(t *testing.T) {
	block := CodeBlock("go", strings.Repeat("y", MaxEmbedBody*2))

	assert.LessOrEqual(t, len(block), MaxEmbedBody)
	assert.True(t, strings.HasPrefix(block, "```go\n"))
	assert.True(t, strings.HasSuffix(block, "\n```"))
}
