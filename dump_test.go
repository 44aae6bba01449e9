package pantryassistant

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, "add flour", map[string]int{"sugar": 2, "flour": 1})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "--- add flour\n"))
	assert.Less(t, strings.Index(out, `"flour"`), strings.Index(out, `"sugar"`))
	assert.NotContains(t, out, "0x")
}
