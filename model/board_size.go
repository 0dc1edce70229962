package model

const (
	MIN_BOARD_SIZE     = 5
	MAX_BOARD_SIZE     = 40
	DEFAULT_BOARD_SIZE = 20
	BLANK_BOARD_SIZE   = 12
)

// BoardSize is always square and clamped to [MIN_BOARD_SIZE, MAX_BOARD_SIZE].
type BoardSize struct {
	Width, Height int
}

func NewBoardSize(size int) BoardSize {
	if size < MIN_BOARD_SIZE {
		size = MIN_BOARD_SIZE
	}
	if size > MAX_BOARD_SIZE {
		size = MAX_BOARD_SIZE
	}
	return BoardSize{Width: size, Height: size}
}

// Grow reports whether the size changed.
func (s *BoardSize) Grow() bool {
	if s.Width >= MAX_BOARD_SIZE || s.Height >= MAX_BOARD_SIZE {
		return false
	}
	s.Width++
	s.Height++
	return true
}

func (s *BoardSize) Shrink() bool {
	if s.Width <= MIN_BOARD_SIZE || s.Height <= MIN_BOARD_SIZE {
		return false
	}
	s.Width--
	s.Height--
	return true
}

func (s BoardSize) Contains(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}
