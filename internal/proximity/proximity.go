// internal/proximity/proximity.go
//
// Proximity scoring between a guessed catalog entry and the day's answer.
// Responsibilities:
//   - Distance: weighted attribute-gap aggregate; 1 is reserved as the
//     exact-match sentinel, every miss is >= 2.
//   - Tier: advisory feedback buckets for presentation.
//   - Direction: release-year ordering hint ("too early"/"too late"),
//     independent of the aggregate distance.
//
// Weighting:
//   Each attribute contributes monotonically — moving one attribute further
//   from the answer never lowers the total. Two distinct entries with
//   identical attributes score the floor (2), never the sentinel.

package proximity

import "github.com/cozygrove/skill-issue/internal/catalog"

// ExactMatch is the sentinel distance for guessing the answer itself.
const ExactMatch = 1

// Attribute weights. Tuned so a same-genre neighbor lands in the closest
// tiers while an unrelated title clears "very far".
const (
	minDistance          = 2
	yearWeight           = 12 // per year of release gap
	genreWeight          = 60 // per tag in the symmetric difference
	platformWeight       = 25 // per platform in the symmetric difference
	ratingWeight         = 30 // per age-rating step
	multiplayerPenalty   = 75 // multiplayer flag mismatch
	criticWeight         = 2  // per critic-score point
	criticUnknownPenalty = 40 // exactly one side has no critic score
)

// Distance computes the proximity of guess to answer.
// Same identity returns ExactMatch; otherwise a positive distance >= 2,
// lower meaning closer, unbounded above.
func Distance(guess, answer *catalog.Entry) int {
	if guess.ID == answer.ID {
		return ExactMatch
	}

	d := yearWeight * abs(guess.ReleaseYear-answer.ReleaseYear)
	d += genreWeight * symmetricDiff(guess.GenreTags, answer.GenreTags)
	d += platformWeight * symmetricDiff(guess.Platforms, answer.Platforms)
	d += ratingWeight * abs(guess.AgeRating-answer.AgeRating)
	if guess.IsMultiplayer != answer.IsMultiplayer {
		d += multiplayerPenalty
	}
	switch {
	case guess.CriticScore != nil && answer.CriticScore != nil:
		d += criticWeight * abs(*guess.CriticScore-*answer.CriticScore)
	case guess.CriticScore != nil || answer.CriticScore != nil:
		d += criticUnknownPenalty
	}

	// Identical attributes on a different entry must not collide with the
	// win sentinel.
	if d < minDistance {
		d = minDistance
	}
	return d
}

// symmetricDiff counts values present in exactly one of the two sets.
func symmetricDiff(a, b []string) int {
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	n := 0
	for _, v := range b {
		if _, ok := seen[v]; ok {
			delete(seen, v)
		} else {
			n++
		}
	}
	return n + len(seen)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Tier is a coarse presentation bucket over the raw distance.
// Raw distance stays meaningful within a tier; these are advisory only.
type Tier string

const (
	TierExact   Tier = "exact"
	TierClosest Tier = "closest"
	TierClose   Tier = "close"
	TierFar     Tier = "far"
	TierVeryFar Tier = "very_far"
)

// TierFor buckets a distance into its feedback tier.
func TierFor(d int) Tier {
	switch {
	case d == ExactMatch:
		return TierExact
	case d <= 100:
		return TierClosest
	case d <= 300:
		return TierClose
	case d <= 600:
		return TierFar
	default:
		return TierVeryFar
	}
}

// Direction is the release-year ordering hint for a wrong guess.
type Direction string

const (
	DirEarlier Direction = "earlier" // guess released before the answer
	DirLater   Direction = "later"   // guess released after the answer
	DirSame    Direction = "same"
)

// DirectionOf compares release years only.
func DirectionOf(guess, answer *catalog.Entry) Direction {
	switch {
	case guess.ReleaseYear < answer.ReleaseYear:
		return DirEarlier
	case guess.ReleaseYear > answer.ReleaseYear:
		return DirLater
	default:
		return DirSame
	}
}
