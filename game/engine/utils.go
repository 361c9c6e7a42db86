package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// headingGlyphs mark the turtle by facing direction in rendered boards.
var headingGlyphs = map[Heading]byte{
	North: '^',
	East:  '>',
	South: 'v',
	West:  '<',
}

// RenderBoard draws the board as one string per row: '.' empty cell,
// '*' mine, 'E' exit, and the turtle as an arrow showing its heading.
// A turtle outside the grid simply does not appear.
func RenderBoard(config *BoardConfig, t *Turtle) []string {
	rows := make([]string, 0, config.Rows)
	for y := 0; y < config.Rows; y++ {
		line := make([]byte, config.Columns)
		for x := 0; x < config.Columns; x++ {
			p := Position{X: x, Y: y}
			switch {
			case t != nil && t.Position == p:
				line[x] = headingGlyphs[t.Heading]
			case config.HasMine(p):
				line[x] = '*'
			case config.Exit == p:
				line[x] = 'E'
			default:
				line[x] = '.'
			}
		}
		rows = append(rows, string(line))
	}
	return rows
}

// CountMines returns the number of distinct mine cells on the board
func CountMines(config *BoardConfig) int {
	return len(config.DedupedMines())
}
