package usecase

import "github.com/google/uuid"

// IdentityDiff is the set difference between the resume store and the
// vector index, plus the identities the raw index listing repeats.
type IdentityDiff struct {
	// Missing are resumes with no index entry
	Missing []uuid.UUID
	// Orphans are index entries with no backing resume
	Orphans []uuid.UUID
	// Duplicates are identities appearing more than once in the raw
	// index listing, regardless of whether a resume backs them
	Duplicates []uuid.UUID
}

// DiffIdentities compares the authoritative identity set against the raw
// index listing. The listing is a multiset: the same identity may appear
// several times, and multiplicity matters for duplicate detection, so
// membership is tracked separately from occurrence counts.
// Pure function, O(|store|+|index|).
func DiffIdentities(store []uuid.UUID, index []uuid.UUID) IdentityDiff {
	inStore := make(map[uuid.UUID]struct{}, len(store))
	for _, id := range store {
		inStore[id] = struct{}{}
	}

	indexCount := make(map[uuid.UUID]int, len(index))
	for _, id := range index {
		indexCount[id]++
	}

	var diff IdentityDiff
	for _, id := range store {
		if _, ok := indexCount[id]; !ok {
			diff.Missing = append(diff.Missing, id)
		}
	}
	// Iterate the raw listing rather than the count map so output order
	// follows input order and stays deterministic for a given listing.
	seen := make(map[uuid.UUID]struct{}, len(indexCount))
	for _, id := range index {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := inStore[id]; !ok {
			diff.Orphans = append(diff.Orphans, id)
		}
		if indexCount[id] > 1 {
			diff.Duplicates = append(diff.Duplicates, id)
		}
	}
	return diff
}
