package mindset

// Badge labels, lowest tier first. IDs shown to users; keep them stable.
const (
	BadgeBeginner    = "Beginner"
	BadgeExplorer    = "Explorer"
	BadgeMaster      = "Master"
	BadgeGrandmaster = "Grandmaster"
	BadgeLegend      = "Legend"
)

// BadgeFor maps a challenge completion count to its badge label.
// The stored badge field is a cache of this function, never independent state.
func BadgeFor(challengesCompleted int) string {
	switch {
	case challengesCompleted <= 5:
		return BadgeBeginner
	case challengesCompleted <= 15:
		return BadgeExplorer
	case challengesCompleted <= 25:
		return BadgeMaster
	case challengesCompleted <= 50:
		return BadgeGrandmaster
	default:
		return BadgeLegend
	}
}
