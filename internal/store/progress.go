package store

// PointsPerLevel is how many approved points raise the level by one.
const PointsPerLevel = 50

// Progress is derived from the task list and never stored.
type Progress struct {
	TotalPoints int
	Level       int
}

// ComputeProgress sums the points of approved tasks and derives the level.
func ComputeProgress(tasks []Task) Progress {
	total := 0
	for _, t := range tasks {
		if t.Status == TaskApproved {
			total += t.Points
		}
	}
	return Progress{TotalPoints: total, Level: LevelForPoints(total)}
}

// LevelForPoints returns 1 + floor(points / PointsPerLevel).
func LevelForPoints(points int) int {
	return 1 + floorDiv(points, PointsPerLevel)
}

// LevelPoints returns the points earned inside the current level.
func (p Progress) LevelPoints() int {
	return p.TotalPoints - floorDiv(p.TotalPoints, PointsPerLevel)*PointsPerLevel
}

// PointsToNextLevel returns how many approved points are missing for
// the next level.
func (p Progress) PointsToNextLevel() int {
	return PointsPerLevel - p.LevelPoints()
}

// Fraction returns the fill of the current level in [0, 1).
func (p Progress) Fraction() float64 {
	return float64(p.LevelPoints()) / PointsPerLevel
}

// WishVisible reports whether a wish is unlocked at the given level.
func WishVisible(w Wish, level int) bool {
	return level >= w.MinLevel
}

// floorDiv rounds toward negative infinity so hand-edited negative
// point values still map onto the same level steps.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
