package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Path addresses one field of one entry, written "<section>.<index>.<field>".
// For the basic section the index is carried but ignored.
type Path struct {
	Section types.Section
	Index   int
	Field   string
}

func (p Path) String() string {
	return fmt.Sprintf("%s.%d.%s", p.Section, p.Index, p.Field)
}

// ParsePath parses a dotted field path. Only basic and the list sections are
// addressable.
func ParsePath(raw string) (Path, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Path{}, &PathError{Path: raw, Message: "expected <section>.<index>.<field>"}
	}

	section, ok := types.ParseSection(parts[0])
	if !ok || (section != types.SectionBasic && !section.IsList()) {
		return Path{}, &PathError{Path: raw, Message: fmt.Sprintf("section %q does not hold fields", parts[0])}
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return Path{}, &PathError{Path: raw, Message: "index is not a number", Cause: err}
	}
	if index < 0 {
		return Path{}, &PathError{Path: raw, Message: "index is negative"}
	}

	if parts[2] == "" {
		return Path{}, &PathError{Path: raw, Message: "field is empty"}
	}

	return Path{Section: section, Index: index, Field: parts[2]}, nil
}
