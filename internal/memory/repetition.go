package memory

import "strings"

// RepetitionThreshold is the word-overlap score above which a prompt
// counts as repeating an earlier line.
const RepetitionThreshold = 0.6

// lengthRatioFloor skips the bag comparison for candidates whose word
// counts differ too much to ever clear the threshold.
const lengthRatioFloor = 0.4

// RepetitionSignal reports whether the prompt closely repeats a recent
// line. Match holds the first (most recent) line over threshold.
type RepetitionSignal struct {
	Repetitive bool
	Match      string
	Score      float64
}

// DetectRepetition scores the prompt against each candidate as the
// frequency-aware shared-word count divided by the larger of the two
// word counts. Candidates are expected most-recent first.
func DetectRepetition(prompt string, candidates []string, threshold float64) RepetitionSignal {
	promptBag, promptLen := wordBag(prompt)
	if promptLen == 0 {
		return RepetitionSignal{}
	}

	for _, cand := range candidates {
		candBag, candLen := wordBag(cand)
		if candLen == 0 {
			continue
		}

		ratio := float64(promptLen) / float64(candLen)
		if ratio > 1 {
			ratio = 1 / ratio
		}
		if ratio < lengthRatioFloor {
			continue
		}

		score := overlapScore(promptBag, promptLen, candBag, candLen)
		if score > threshold {
			return RepetitionSignal{Repetitive: true, Match: cand, Score: score}
		}
	}
	return RepetitionSignal{}
}

func wordBag(s string) (map[string]int, int) {
	words := strings.Fields(strings.ToLower(s))
	bag := make(map[string]int, len(words))
	for _, w := range words {
		bag[w]++
	}
	return bag, len(words)
}

func overlapScore(a map[string]int, aLen int, b map[string]int, bLen int) float64 {
	shared := 0
	for w, n := range a {
		if m, ok := b[w]; ok {
			if m < n {
				shared += m
			} else {
				shared += n
			}
		}
	}
	max := aLen
	if bLen > max {
		max = bLen
	}
	if max == 0 {
		return 0
	}
	return float64(shared) / float64(max)
}
