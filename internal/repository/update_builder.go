package repository

import (
	"fmt"
	"strings"
)

// updateBuilder accumulates SET assignments for a partial update.
type updateBuilder struct {
	sets []string
	args []any
}

func (b *updateBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// clause returns the SET clause with updated_at refreshed, and the placeholder
// index available for the next argument.
func (b *updateBuilder) clause() (string, int) {
	sets := append(b.sets, "updated_at = now()")
	return strings.Join(sets, ", "), len(b.args) + 1
}
