package candidate

// Shape-quality scoring terms. The length curve prefers mid-sized
// lists: a keyword or menu block has a handful to a couple dozen
// entries, while navigation bars and exhaustive dumps fall outside.
const (
	sweetSpotTerm  = 3.0 // 5-15 members
	acceptableTerm = 2.0 // 3-20 members
	outlierTerm    = 0.5
	qualityWeight  = 2.0
	chromePenalty  = 0.75
	maxMemberRunes = 30

	// selectThreshold is the minimum score a candidate must clear to be
	// selected outright. When no candidate clears it the best one is
	// still returned; selection yields nil only for an empty set.
	selectThreshold = 2.5
)

// ScoreCandidate assigns a shape-quality score to a single candidate.
func ScoreCandidate(c *RawCandidate) float64 {
	members := c.members()
	n := len(members)

	var score float64
	switch {
	case n >= 5 && n <= 15:
		score = sweetSpotTerm
	case n >= 3 && n <= 20:
		score = acceptableTerm
	default:
		score = outlierTerm
	}

	good := 0
	chrome := 0
	for _, m := range members {
		if hasLetter(m) && len([]rune(m)) <= maxMemberRunes {
			good++
		}
		if IsChromeToken(m) {
			chrome++
		}
	}
	if n > 0 {
		score += qualityWeight * float64(good) / float64(n)
	}
	score -= chromePenalty * float64(chrome)

	c.Score = score
	return score
}

// SelectBest scores every candidate and returns the strongest one. A
// candidate below the selection threshold is still returned when it is
// all there is; nil means the candidate set was empty.
func SelectBest(candidates []RawCandidate) *RawCandidate {
	if len(candidates) == 0 {
		return nil
	}
	best := 0
	for i := range candidates {
		ScoreCandidate(&candidates[i])
		if candidates[i].Score > candidates[best].Score {
			best = i
		}
	}
	return &candidates[best]
}
