package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEditCommandRangeWithDash(t *testing.T) {
	cmd := ParseEditCommand("Cập nhật ngày 2-4: đổi giờ ăn sáng")

	assert.True(t, cmd.IsRangeUpdate)
	assert.Equal(t, 2, cmd.StartDay)
	assert.Equal(t, 3, cmd.ChunkSize)
	assert.Equal(t, "đổi giờ ăn sáng", cmd.Message)
}

func TestParseEditCommandRangeWithDen(t *testing.T) {
	cmd := ParseEditCommand("Ngày 1 đến 2: thêm hoạt động buổi tối")

	assert.True(t, cmd.IsRangeUpdate)
	assert.Equal(t, 1, cmd.StartDay)
	assert.Equal(t, 2, cmd.ChunkSize)
	assert.Equal(t, "thêm hoạt động buổi tối", cmd.Message)
}

func TestParseEditCommandSingleDayRange(t *testing.T) {
	cmd := ParseEditCommand("Cập nhật ngày 3-3: dời bữa trưa sang 12h")

	assert.True(t, cmd.IsRangeUpdate)
	assert.Equal(t, 3, cmd.StartDay)
	assert.Equal(t, 1, cmd.ChunkSize)
}

func TestParseEditCommandChunkTooLarge(t *testing.T) {
	cmd := ParseEditCommand("Cập nhật ngày 2-6: đổi toàn bộ lịch trình")

	assert.False(t, cmd.IsRangeUpdate)
	assert.Equal(t, "Cập nhật ngày 2-6: đổi toàn bộ lịch trình", cmd.Message)
}

func TestParseEditCommandInvalidBounds(t *testing.T) {
	for _, text := range []string{
		"Ngày 0-1: sửa bữa sáng",  // days are 1-based
		"Ngày 4-2: sửa bữa sáng",  // reversed span
		"Ngày 2-: sửa bữa sáng",   // missing end day
		"Ngày hai-ba: sửa gì đó",  // written numbers are not supported
	} {
		cmd := ParseEditCommand(text)
		assert.False(t, cmd.IsRangeUpdate, "input %q", text)
		assert.Equal(t, text, cmd.Message)
	}
}

func TestParseEditCommandPlainInstruction(t *testing.T) {
	cmd := ParseEditCommand("Thay bữa sáng")

	assert.False(t, cmd.IsRangeUpdate)
	assert.Zero(t, cmd.StartDay)
	assert.Zero(t, cmd.ChunkSize)
	assert.Equal(t, "Thay bữa sáng", cmd.Message)
}

func TestParseEditCommandDayMentionWithoutRange(t *testing.T) {
	// A day reference without the range-colon syntax is a plain
	// instruction, not a chunk update.
	cmd := ParseEditCommand("Ngày 1, 6h, đổi sang đi chơi")

	assert.False(t, cmd.IsRangeUpdate)
	assert.Equal(t, "Ngày 1, 6h, đổi sang đi chơi", cmd.Message)
}

func TestParseEditCommandCaseInsensitiveKeyword(t *testing.T) {
	cmd := ParseEditCommand("cập nhật ngày 1-2: đổi khách sạn")
	assert.True(t, cmd.IsRangeUpdate)

	cmd = ParseEditCommand("ngày 1-2: đổi khách sạn")
	assert.True(t, cmd.IsRangeUpdate)
}
