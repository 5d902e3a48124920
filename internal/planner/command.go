package planner

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxChunkDays caps how many consecutive days a single chat instruction
// may rewrite. Larger spans blow up generation latency and cost, so
// anything wider falls back to a plain whole-plan instruction.
const MaxChunkDays = 3

// EditCommand is the parsed form of a chat message. When IsRangeUpdate is
// false, Message carries the original text verbatim and StartDay/ChunkSize
// are zero.
type EditCommand struct {
	IsRangeUpdate bool
	StartDay      int
	ChunkSize     int
	Message       string
}

// Matches "Cập nhật ngày 2-4: ..." and "Ngày 2 đến 4: ...".
var rangePattern = regexp.MustCompile(`(?i)^\s*(?:cập nhật\s+)?ngày\s+(\d+)\s*(?:-|–|đến)\s*(\d+)\s*:\s*(.+)$`)

// ParseEditCommand recognizes the "update days A through B" syntax in a
// chat message. Anything that does not match, or that asks for an invalid
// or oversized day span, is treated as a normal instruction.
func ParseEditCommand(text string) EditCommand {
	plain := EditCommand{Message: text}

	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return plain
	}

	startDay, err := strconv.Atoi(m[1])
	if err != nil || startDay <= 0 {
		return plain
	}
	endDay, err := strconv.Atoi(m[2])
	if err != nil {
		return plain
	}

	chunk := endDay - startDay + 1
	if chunk < 1 || chunk > MaxChunkDays {
		return plain
	}

	return EditCommand{
		IsRangeUpdate: true,
		StartDay:      startDay,
		ChunkSize:     chunk,
		Message:       strings.TrimSpace(m[3]),
	}
}

// isAddInstruction reports whether a message asks to add something, which
// narrows the post-update diff to the selected activity only.
func isAddInstruction(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "thêm") || strings.Contains(lower, "bổ sung")
}
