package mindset

import "math/rand"

// challengeList is the canonical set of daily growth mindset prompts.
// Keep the wording stable; clients display these verbatim.
var challengeList = []string{
	"Write down 3 things you learned from a recent failure.",
	"Try solving a problem you previously gave up on.",
	"Ask a friend for constructive feedback and act on it.",
	"Spend 30 minutes learning something outside your comfort zone.",
	"Teach someone else a concept you struggled with before.",
}

// RandomChallenge returns one prompt chosen uniformly from the list.
func RandomChallenge() string {
	return challengeList[rand.Intn(len(challengeList))]
}

// Challenges returns a copy of the prompt list so callers cannot mutate it.
func Challenges() []string {
	out := make([]string, len(challengeList))
	copy(out, challengeList)
	return out
}
