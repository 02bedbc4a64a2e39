package regex

import (
	"fmt"
	"strings"

	"github.com/llgen/llgen/ucd"
)

// lookupUnicodeProperty resolves a `\p{Name}` escape to a rune predicate,
// backed by the Unicode character database in the ucd package. Name may be a
// bare General_Category or script value (`Lu`, `Nd`, `Greek`) or a
// `Property=Value` pair (`Script=Greek`). A bare name is tried as a
// General_Category value first and as a script value second. Values that the
// ucd package's tables do not cover are reported as errors.
func lookupUnicodeProperty(name string) (runePredicate, error) {
	propName, propVal := "", name
	if i := strings.IndexByte(name, '='); i >= 0 {
		propName, propVal = name[:i], name[i+1:]
	}

	ranges, _, err := ucd.FindCodePointRanges(propName, propVal)
	if err != nil && propName == "" {
		if sc, _, scErr := ucd.FindCodePointRanges("sc", propVal); scErr == nil {
			ranges, err = sc, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unknown Unicode property %q: %w", name, err)
	}

	return func(r rune) bool {
		for _, cr := range ranges {
			if r >= cr.From && r <= cr.To {
				return true
			}
		}
		return false
	}, nil
}
