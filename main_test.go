package main

import (
	"context"
	"errors"
	"testing"

	"medexam_backend/internal/config"
	"medexam_backend/internal/model"
	"medexam_backend/internal/util"
)

func TestBatchStopsAtFirstFailure(t *testing.T) {
	b := newBatch(config.BatchConfig{})
	boom := errors.New("boom")
	var seen []uint

	err := b.run(context.Background(), []uint{1, 2, 3}, func(_ context.Context, id uint) error {
		seen = append(seen, id)
		if id == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("expected to stop after id 2, saw %v", seen)
	}
}

func TestBatchHonoursCancellation(t *testing.T) {
	b := newBatch(config.BatchConfig{RatePerSecond: 0.001, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := b.run(ctx, []uint{1, 2}, func(_ context.Context, _ uint) error {
		calls++
		cancel()
		return nil
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if calls != 1 {
		t.Errorf("expected one call before cancellation, got %d", calls)
	}
}

func TestRetireFlags(t *testing.T) {
	cmd := childCmd().Commands()[0]
	_ = cmd.Flags().Set("type", "mcq")
	_ = cmd.Flags().Set("status", "deleted")

	variant, status, err := retireFlags(cmd)
	if err != nil {
		t.Fatalf("retireFlags: %v", err)
	}
	if variant != model.QuestionMCQ || status != model.ResponseDeleted {
		t.Errorf("got %q %q", variant, status)
	}

	_ = cmd.Flags().Set("status", "active")
	if _, _, err := retireFlags(cmd); !errors.Is(err, util.ErrInvalidResponseStatus) {
		t.Errorf("expected ErrInvalidResponseStatus, got %v", err)
	}
	_ = cmd.Flags().Set("status", "obsolete")
	_ = cmd.Flags().Set("type", "essay")
	if _, _, err := retireFlags(cmd); !errors.Is(err, util.ErrUnknownQuestionType) {
		t.Errorf("expected ErrUnknownQuestionType, got %v", err)
	}
}
