package questionbank

// Answered reports whether a question is already in the user's history.
type Answered interface {
	Contains(id ID) bool
}

// Stats summarises a filtered pool against the answer history.
type Stats struct {
	Available int // questions in the pool
	Answered  int // of those, already answered
	Eligible  int // unanswered questions that can be drawn on their own
}

// ComputeStats counts pool questions against history. isDependent marks
// questions that only travel with their principal; it may be nil.
func ComputeStats(questions []Question, answered Answered, isDependent func(ID) bool) Stats {
	stats := Stats{Available: len(questions)}
	for _, q := range questions {
		if answered.Contains(q.ID) {
			stats.Answered++
			continue
		}
		if isDependent != nil && isDependent(q.ID) {
			continue
		}
		stats.Eligible++
	}
	return stats
}
