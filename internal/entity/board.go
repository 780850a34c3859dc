package entity

// BoardSize is the number of cells on a 3x3 board, indexed 0..8 row by row.
const BoardSize = 9

// Mark is the content of a single cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// IsValid reports whether the mark may appear on a board.
func (that Mark) IsValid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}

// Board holds the cell mapping. All writes go through Update and Reset.
type Board struct {
	cells [BoardSize]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// BoardFrom builds a board holding the given cells.
func BoardFrom(cells [BoardSize]Mark) *Board {
	return &Board{cells: cells}
}

// Cells returns a copy of the board, so callers can't mutate it.
func (that *Board) Cells() [BoardSize]Mark {
	return that.cells
}

// Update writes mark into the cell. Out of range indexes are ignored.
func (that *Board) Update(index int, mark Mark) {
	if !IsCellInRange(index) {
		return
	}

	that.cells[index] = mark
}

func (that *Board) Reset() {
	that.cells = [BoardSize]Mark{}
}

// IsEmpty reports whether the cell exists and holds no mark.
func (that *Board) IsEmpty(index int) bool {
	return IsCellInRange(index) && that.cells[index] == EmptyCell
}

func (that *Board) IsFull() bool {
	return that.Count(EmptyCell) == 0
}

// Count returns the number of cells holding mark.
func (that *Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that.cells {
		if cell == mark {
			count++
		}
	}

	return count
}

func IsCellInRange(index int) bool {
	return index >= 0 && index < BoardSize
}
