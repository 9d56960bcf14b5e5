package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-screening-backend/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type reconciliationUsecase struct {
	resumes domain.ResumeRepository
	index   domain.VectorIndex
	workers int
}

// NewReconciliationUsecase creates the engine that repairs drift between
// the resume store and the vector index. workers bounds how many
// corrective index calls run in parallel.
func NewReconciliationUsecase(resumes domain.ResumeRepository, index domain.VectorIndex, workers int) domain.ReconciliationUsecase {
	if workers < 1 {
		workers = 1
	}
	return &reconciliationUsecase{
		resumes: resumes,
		index:   index,
		workers: workers,
	}
}

// syncOutcome is one worker's local result, merged by the aggregator
// after all workers complete. Workers never touch shared counters.
type syncOutcome struct {
	added     int
	removed   int
	collapsed int
	failure   *domain.SyncFailure
}

func syncFail(id uuid.UUID, op domain.SyncOp, err error) syncOutcome {
	return syncOutcome{failure: &domain.SyncFailure{ResumeID: id, Op: op, Reason: err.Error()}}
}

// Run executes one reconciliation pass. The two listings are point-in-time
// best-effort reads: identities added or removed between them are input to
// the next pass, not an error in this one. A single identity's failure
// never aborts the pass; it is recorded in the result and the remaining
// identities are still attempted. Cancelling ctx yields a partial result
// with the unprocessed identities recorded as failures.
func (u *reconciliationUsecase) Run(ctx context.Context) (*domain.SyncResult, error) {
	storeIDs, err := u.resumes.ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resume identities: %w", err)
	}
	entries, err := u.index.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list index entries: %w", err)
	}

	indexIDs := make([]uuid.UUID, len(entries))
	docsByID := make(map[uuid.UUID][]string, len(entries))
	for i, e := range entries {
		indexIDs[i] = e.ResumeID
		docsByID[e.ResumeID] = append(docsByID[e.ResumeID], e.DocumentID)
	}
	diff := DiffIdentities(storeIDs, indexIDs)

	orphanSet := make(map[uuid.UUID]struct{}, len(diff.Orphans))
	for _, id := range diff.Orphans {
		orphanSet[id] = struct{}{}
	}

	var tasks []func(context.Context) syncOutcome
	for _, id := range diff.Missing {
		id := id
		tasks = append(tasks, func(ctx context.Context) syncOutcome { return u.addMissing(ctx, id) })
	}
	for _, id := range diff.Orphans {
		id := id
		docs := docsByID[id]
		tasks = append(tasks, func(ctx context.Context) syncOutcome { return u.removeOrphan(ctx, id, docs) })
	}
	for _, id := range diff.Duplicates {
		// orphaned duplicates are fully removed by the orphan task above
		if _, isOrphan := orphanSet[id]; isOrphan {
			continue
		}
		id := id
		docs := docsByID[id]
		tasks = append(tasks, func(ctx context.Context) syncOutcome { return u.collapseDuplicates(ctx, id, docs) })
	}

	// Each worker writes only its own slot; the merge happens after Wait,
	// so aggregation stays race-free without shared counters.
	outcomes := make([]syncOutcome, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			outcomes[i] = task(gctx)
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.SyncResult{CompletedAt: time.Now()}
	for i := range outcomes {
		result.Added += outcomes[i].added
		result.Removed += outcomes[i].removed
		result.DuplicatesCollapsed += outcomes[i].collapsed
		if outcomes[i].failure != nil {
			result.Failures = append(result.Failures, *outcomes[i].failure)
		}
	}
	result.Success = len(result.Failures) == 0
	return result, nil
}

func (u *reconciliationUsecase) addMissing(ctx context.Context, id uuid.UUID) syncOutcome {
	if err := ctx.Err(); err != nil {
		return syncFail(id, domain.SyncOpUpsert, err)
	}
	resume, err := u.resumes.GetByID(ctx, id)
	if err != nil {
		return syncFail(id, domain.SyncOpFetch, err)
	}
	if err := u.index.Upsert(ctx, id, resume.IndexContent()); err != nil {
		return syncFail(id, domain.SyncOpUpsert, err)
	}
	return syncOutcome{added: 1}
}

func (u *reconciliationUsecase) removeOrphan(ctx context.Context, id uuid.UUID, docIDs []string) syncOutcome {
	if err := ctx.Err(); err != nil {
		return syncFail(id, domain.SyncOpDelete, err)
	}
	// An orphan may be duplicated as well; every entry goes.
	for _, docID := range docIDs {
		if err := u.index.Delete(ctx, docID); err != nil {
			return syncFail(id, domain.SyncOpDelete, err)
		}
	}
	return syncOutcome{removed: 1}
}

// collapseDuplicates deletes all but one entry for a duplicated identity.
// The entry with the lexicographically smallest document id survives;
// document ids are immutable, so repeated runs converge on the same
// survivor instead of oscillating.
func (u *reconciliationUsecase) collapseDuplicates(ctx context.Context, id uuid.UUID, docIDs []string) syncOutcome {
	if err := ctx.Err(); err != nil {
		return syncFail(id, domain.SyncOpDelete, err)
	}
	sorted := make([]string, len(docIDs))
	copy(sorted, docIDs)
	sort.Strings(sorted)
	for _, docID := range sorted[1:] {
		if err := u.index.Delete(ctx, docID); err != nil {
			return syncFail(id, domain.SyncOpDelete, err)
		}
	}
	return syncOutcome{collapsed: 1}
}
