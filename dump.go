package pantryassistant

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// dumpConfig prints stable output: map keys sorted, no pointer addresses or
// slice capacities.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump writes v to w under a label line. The CLI uses it to show the full
// response behind each reply when -debug is set.
func Dump(w io.Writer, label string, v any) {
	fmt.Fprintf(w, "--- %s\n", label)
	dumpConfig.Fdump(w, v)
}
