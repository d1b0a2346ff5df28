package pipeline

import (
	"fmt"
	"strings"
)

// ValidateSnapshotPattern checks that pattern names one file per frame: it
// must contain exactly one integer verb and no path separators. "%%" is a
// literal percent sign. An empty pattern selects DefaultSnapshotPattern.
func ValidateSnapshotPattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	if strings.ContainsAny(pattern, `/\`) {
		return fmt.Errorf("pattern %q must not contain path separators", pattern)
	}

	verbs := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		i++
		if i < len(pattern) && pattern[i] == '%' {
			continue
		}
		for i < len(pattern) && strings.IndexByte("+-# 0123456789", pattern[i]) >= 0 {
			i++
		}
		if i >= len(pattern) || pattern[i] != 'd' {
			return fmt.Errorf("pattern %q: only %%d verbs are allowed", pattern)
		}
		verbs++
	}
	if verbs != 1 {
		return fmt.Errorf("pattern %q must contain exactly one %%d verb, found %d", pattern, verbs)
	}
	return nil
}
