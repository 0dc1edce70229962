package server

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/zucenko/eggroll/model"
	"github.com/zucenko/eggroll/persistence"
)

// LoadFile reads an ASCII level: one glyph per tile, rows top to bottom.
func LoadFile(path string, levelID int, tiles *model.TileSet) (*persistence.Level, error) {
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := read(file, tiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	size := len(rows)
	for _, r := range rows {
		if len(r) > size {
			size = len(r)
		}
	}
	return &persistence.Level{
		LevelID:   levelID,
		BoardSize: model.NewBoardSize(size).Width,
		Tiles:     swap(rows, size),
	}, nil
}

// swap turns rows into columns, padding short rows with sky.
func swap(rows [][]int, size int) [][]int {
	cols := make([][]int, 0, size)
	for c := 0; c < size; c++ {
		col := make([]int, 0, len(rows))
		for r := 0; r < len(rows); r++ {
			id := model.TILE_SKY
			if c < len(rows[r]) {
				id = rows[r][c]
			}
			col = append(col, id)
		}
		cols = append(cols, col)
	}
	return cols
}

// read skips blank lines and lines starting with ';'.
func read(reader io.Reader, tiles *model.TileSet) ([][]int, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	rows := make([][]int, 0)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		s := strings.TrimRight(scanner.Text(), " \t\r")
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}
		row := make([]int, 0, len(s))
		for i, char := range []rune(s) {
			id, found := tiles.ByGlyph(char)
			if !found {
				return nil, fmt.Errorf("line %d col %d: unknown glyph %q", lineNo, i+1, char)
			}
			row = append(row, id)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no tiles")
	}
	return rows, nil
}
