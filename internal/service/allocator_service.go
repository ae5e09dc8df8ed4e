package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"
	"practicetime_backend/pkg/logger"
	"practicetime_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// allocateMaxAttempts bounds the NextID/Reserve retry loop when concurrent
// uploads keep winning the same candidate id.
const allocateMaxAttempts = 5

// AllocatorService issues the human-readable question ids of the form
// {Grade}{TopicLetter}_{SubtopicNumber}_{Sequence}, e.g. "G1A_2_1".
// NextID only picks a candidate from a ledger snapshot; Reserve's
// compare-and-set transaction is the actual uniqueness guarantee. Trivia
// questions have no grade/topic classification and never allocate.
type AllocatorService struct {
	Ledger *repository.LedgerRepository
}

func NewAllocatorService(ledger *repository.LedgerRepository) *AllocatorService {
	return &AllocatorService{Ledger: ledger}
}

// BaseID derives the deterministic prefix: grade, then the topic letter
// (topic code minus its grade prefix), then the subtopic number (the text
// after the dot in the subtopic code).
func BaseID(grade, topic, subtopic string) (string, error) {
	if grade == "" || topic == "" || subtopic == "" {
		return "", util.ErrClassificationMissing
	}

	letter := strings.TrimPrefix(topic, grade)
	dot := strings.Index(subtopic, ".")
	if letter == topic || dot < 0 {
		return "", fmt.Errorf("%w: topic %q, subtopic %q", util.ErrClassificationMissing, topic, subtopic)
	}
	return grade + letter + "_" + subtopic[dot+1:], nil
}

// NextID probes a single snapshot of the whole ledger from sequence 1 upward
// and returns the first unused candidate. The snapshot can go stale the
// moment it is read; callers must follow up with Reserve.
func (s *AllocatorService) NextID(ctx context.Context, grade, topic, subtopic string) (string, error) {
	base, err := BaseID(grade, topic, subtopic)
	if err != nil {
		return "", err
	}

	taken, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	sequence := 1
	for {
		candidate := fmt.Sprintf("%s_%d", base, sequence)
		if _, exists := taken[candidate]; !exists {
			return candidate, nil
		}
		sequence++
	}
}

// Reserve claims id for ownerKey. ErrAllocationRace means another caller got
// there first and the caller should recompute a fresh candidate.
func (s *AllocatorService) Reserve(ctx context.Context, id, ownerKey string) error {
	committed, err := s.Ledger.Reserve(ctx, id, ownerKey)
	if err != nil {
		return err
	}
	if !committed {
		return util.ErrAllocationRace
	}
	return nil
}

// Allocate runs the NextID and Reserve loop until an id commits or the retry
// budget is exhausted.
func (s *AllocatorService) Allocate(ctx context.Context, grade, topic, subtopic, ownerKey string) (string, error) {
	for attempt := 1; attempt <= allocateMaxAttempts; attempt++ {
		id, err := s.NextID(ctx, grade, topic, subtopic)
		if err != nil {
			return "", err
		}

		err = s.Reserve(ctx, id, ownerKey)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, util.ErrAllocationRace) {
			return "", err
		}
		monitoring.AllocationRaces.Inc()
		logger.Log.Warn("question id candidate lost reservation race",
			zap.String("id", id),
			zap.Int("attempt", attempt),
		)
	}
	return "", fmt.Errorf("allocate question id: %w after %d attempts", util.ErrAllocationRace, allocateMaxAttempts)
}
