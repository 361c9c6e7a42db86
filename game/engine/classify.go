package engine

// Classify maps the turtle's position on a board to an outcome status.
// Pure function, no side effects on either argument.
//
// Evaluation order is load-bearing: bounds checks come before mine and
// exit membership so that out-of-range entries in the mine or exit sets
// can never mask an escaped turtle, and the mine check comes before the
// exit check so that a mined exit cell still counts as a mine hit.
func Classify(config *BoardConfig, t *Turtle) Status {
	p := t.Position
	if p.X < 0 || p.Y < 0 {
		return OutOfBounds
	}
	if p.X >= config.Columns || p.Y >= config.Rows {
		return OutOfBounds
	}
	if config.HasMine(p) {
		return MineHit
	}
	if p == config.Exit {
		return Safe
	}
	return StillInDanger
}
