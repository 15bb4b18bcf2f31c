package store

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	taskIDPrefix = "t"
	wishIDPrefix = "w"
)

// nextID returns prefix + (max numeric suffix among ids + 1), or prefix+"1"
// when no id carries the prefix with a numeric suffix. The scan is over
// current records only, so ids are unique as long as records are never
// removed.
func nextID(prefix string, ids []string) string {
	found := false
	highest := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if !found || n > highest {
			highest = n
			found = true
		}
	}
	if !found {
		return prefix + "1"
	}
	return fmt.Sprintf("%s%d", prefix, highest+1)
}
