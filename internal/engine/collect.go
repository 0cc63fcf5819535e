package engine

import (
	"iter"

	"github.com/inovacc/autofetch/internal/model"
)

// Collect drains seq and returns the elements produced before the first
// error, together with that error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T

	for v, err := range seq {
		if err != nil {
			return out, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize counts succeeded and failed outcomes.
func Summarize(outcomes []model.SyncOutcome) Summary {
	var s Summary

	for _, o := range outcomes {
		if o.Failed {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}

	return s
}
