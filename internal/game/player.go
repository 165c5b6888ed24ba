package game

// Player binds a display name to one Board.
// Several players may hold the same *Board when they intentionally share
// one surface (single-board mode).
type Player struct {
	Name  string
	board *Board
}

func NewPlayer(name string, board *Board) *Player {
	return &Player{Name: name, board: board}
}

func (p *Player) Board() *Board { return p.board }
func (p *Player) GameOver() bool { return p.board.GameOver() }
func (p *Player) GameWon() bool { return p.board.GameWon() }

// MakeGuess validates raw against the board configuration and evaluates it
// on the board's current row. It reports applied=false without error when
// the board is already over; validation and board errors are returned unchanged.
func (p *Player) MakeGuess(raw string) (applied bool, err error) {
	if p.board.GameOver() {
		return false, nil
	}
	digits, err := ValidateCode(raw, p.board.CodeLength(), p.board.NumColors())
	if err != nil {
		return false, err
	}
	if _, err := p.board.EvaluateGuess(p.board.CurrentRowIndex(), digits); err != nil {
		return false, err
	}
	return true, nil
}
