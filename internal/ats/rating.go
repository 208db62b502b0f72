package ats

// Rating is the band an ATS score falls into.
type Rating int

const (
	NeedsWork Rating = iota
	Good
	Excellent
)

func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return Excellent
	case score >= 60:
		return Good
	default:
		return NeedsWork
	}
}

func (r Rating) String() string {
	switch r {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	default:
		return "needs work"
	}
}

func (r Rating) Description() string {
	switch r {
	case Excellent:
		return "Excellent ATS compatibility"
	case Good:
		return "Good ATS compatibility with room for improvement"
	default:
		return "Needs significant improvements for ATS compatibility"
	}
}
