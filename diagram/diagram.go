// Package diagram draws positions as SVG images.
package diagram

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"tutor-engine/board"
)

var glyphs = map[board.Piece]string{
	board.WhiteKing: "♔", board.WhiteQueen: "♕", board.WhiteRook: "♖",
	board.WhiteBishop: "♗", board.WhiteKnight: "♘", board.WhitePawn: "♙",
	board.BlackKing: "♚", board.BlackQueen: "♛", board.BlackRook: "♜",
	board.BlackBishop: "♝", board.BlackKnight: "♞", board.BlackPawn: "♟",
}

type options struct {
	squareSize  int
	light, dark string
	mark        string
	perspective board.Color
	coordinates bool
	marked      map[board.Square]bool
}

type Option func(*options)

// SquareSize sets the edge of one square in pixels.
func SquareSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.squareSize = px
		}
	}
}

// Colors overrides the light and dark square fills.
func Colors(light, dark string) Option {
	return func(o *options) { o.light, o.dark = light, dark }
}

// Perspective draws the board from the given side.
func Perspective(c board.Color) Option {
	return func(o *options) { o.perspective = c }
}

// Coordinates toggles file and rank labels along the board edges.
func Coordinates(on bool) Option {
	return func(o *options) { o.coordinates = on }
}

// MarkSquares fills the given squares with color instead of their usual shade.
func MarkSquares(color string, sqs ...board.Square) Option {
	return func(o *options) {
		o.mark = color
		for _, sq := range sqs {
			o.marked[sq] = true
		}
	}
}

// MarkMove marks the origin and destination of m. NoMove marks nothing.
func MarkMove(color string, m board.Move) Option {
	if m == board.NoMove {
		return func(*options) {}
	}
	return MarkSquares(color, m.From(), m.To())
}

// errWriter keeps the first write error, svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, nil
}

// Render writes an SVG diagram of pos to w.
func Render(w io.Writer, pos *board.Position, opts ...Option) error {
	o := options{
		squareSize:  45,
		light:       "#f0d9b5",
		dark:        "#b58863",
		perspective: board.White,
		coordinates: true,
		marked:      map[board.Square]bool{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	size := o.squareSize * 8
	canvas.Start(size, size)
	canvas.Gid("board")
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := o.squareAt(row, col)
			x, y := col*o.squareSize, row*o.squareSize

			fill := o.dark
			if (sq.File()+sq.Rank())%2 == 1 {
				fill = o.light
			}
			if o.marked[sq] {
				fill = o.mark
			}
			canvas.Rect(x, y, o.squareSize, o.squareSize, "fill:"+fill)

			if pc := pos.PieceAt(sq); pc != board.NoPiece {
				canvas.Text(x+o.squareSize/2, y+o.squareSize*4/5, glyphs[pc],
					fmt.Sprintf("text-anchor:middle;font-size:%dpx", o.squareSize*4/5))
			}
		}
	}
	canvas.Gend()
	if o.coordinates {
		o.drawCoordinates(canvas)
	}
	canvas.End()
	return ew.err
}

// squareAt maps a drawing cell (row 0 at the top) to a board square.
func (o *options) squareAt(row, col int) board.Square {
	if o.perspective == board.Black {
		return board.SquareOf(7-col, row)
	}
	return board.SquareOf(col, 7-row)
}

func (o *options) drawCoordinates(canvas *svg.SVG) {
	font := fmt.Sprintf("font-size:%dpx;fill:#555", max(o.squareSize/5, 6))
	for i := 0; i < 8; i++ {
		file := o.squareAt(7, i).File()
		canvas.Text(i*o.squareSize+2, 8*o.squareSize-2, string(rune('a'+file)), font)
		rank := o.squareAt(i, 7).Rank()
		canvas.Text(8*o.squareSize-2, i*o.squareSize+o.squareSize/5+2, string(rune('1'+rank)), font+";text-anchor:end")
	}
}
