// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mixer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/shares"
	"github.com/danielhkuo/share-mixer/store"
)

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidPoll      = errors.New("invalid poll")
	ErrDefaultPoll      = errors.New("the default poll cannot be deleted")
)

// Service applies allocator operations to persisted poll state.
type Service struct {
	store store.Store
	now   func() time.Time

	// serializes read-modify-write of share state
	mu sync.Mutex
}

func New(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// State returns the current view of a poll. Baseline values appear on the
// bars only when compare is set and a baseline exists.
func (s *Service) State(ctx context.Context, pollID string, compare bool) (models.MixerState, error) {
	poll, err := s.Poll(ctx, pollID)
	if err != nil {
		return models.MixerState{}, err
	}

	live := s.loadShares(ctx, store.LiveKey(pollID), poll.Categories)
	label := s.loadLabel(ctx, pollID)
	baseline := s.loadBaseline(ctx, poll, label)
	return buildState(poll, live, baseline, label, compare), nil
}

// SetShare sets one category from a raw slider value.
func (s *Service) SetShare(ctx context.Context, pollID, categoryID string, raw float64) (shares.ShareSet, error) {
	return s.mutate(ctx, pollID, func(p models.Poll, live shares.ShareSet) (shares.ShareSet, error) {
		if !slices.ContainsFunc(p.Categories, func(c shares.Category) bool { return c.ID == categoryID }) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
		}
		return shares.SetShare(live, categoryID, raw), nil
	})
}

// Reset zeroes every category.
func (s *Service) Reset(ctx context.Context, pollID string) (shares.ShareSet, error) {
	return s.mutate(ctx, pollID, func(p models.Poll, _ shares.ShareSet) (shares.ShareSet, error) {
		return shares.ResetAll(p.Categories), nil
	})
}

// Normalize scales the live shares to exactly 100.
func (s *Service) Normalize(ctx context.Context, pollID string) (shares.ShareSet, error) {
	return s.mutate(ctx, pollID, func(p models.Poll, live shares.ShareSet) (shares.ShareSet, error) {
		return shares.NormalizeTo100(live, p.Categories), nil
	})
}

// Snapshot replaces the baseline with a copy of the live shares. An empty
// label keeps the current one.
func (s *Service) Snapshot(ctx context.Context, pollID, label string) (shares.Baseline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, err := s.Poll(ctx, pollID)
	if err != nil {
		return shares.Baseline{}, err
	}

	if label == "" {
		label = s.loadLabel(ctx, pollID)
	}

	live := s.loadShares(ctx, store.LiveKey(pollID), poll.Categories)
	baseline := shares.Snapshot(live, poll.Categories, label)

	s.saveJSON(ctx, store.BaselineKey(pollID), baseline.Shares)
	s.saveJSON(ctx, store.BaselineLabelKey(pollID), baseline.Label)

	slog.Info("baseline captured", "poll_id", pollID, "label", baseline.Label)
	return baseline, nil
}

// ClearBaseline removes the baseline. The label is kept for the next snapshot.
func (s *Service) ClearBaseline(ctx context.Context, pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Poll(ctx, pollID); err != nil {
		return err
	}
	s.delete(ctx, store.BaselineKey(pollID))
	return nil
}

// SetBaselineLabel renames the baseline.
func (s *Service) SetBaselineLabel(ctx context.Context, pollID, label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Poll(ctx, pollID); err != nil {
		return "", err
	}
	label = shares.NormalizeLabel(label)
	s.saveJSON(ctx, store.BaselineLabelKey(pollID), label)
	return label, nil
}

// NoticeDismissed reports whether the notice version was dismissed for good.
func (s *Service) NoticeDismissed(ctx context.Context, version string) bool {
	var dismissed bool
	return s.loadJSON(ctx, store.NoticeKey(version), &dismissed) && dismissed
}

// DismissNotice hides a notice version permanently.
func (s *Service) DismissNotice(ctx context.Context, version string) {
	s.saveJSON(ctx, store.NoticeKey(version), true)
}

func (s *Service) mutate(ctx context.Context, pollID string, fn func(models.Poll, shares.ShareSet) (shares.ShareSet, error)) (shares.ShareSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, err := s.Poll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	live := s.loadShares(ctx, store.LiveKey(pollID), poll.Categories)
	next, err := fn(poll, live)
	if err != nil {
		return nil, err
	}

	s.saveJSON(ctx, store.LiveKey(pollID), next)
	return next, nil
}

func (s *Service) loadShares(ctx context.Context, key string, categories []shares.Category) shares.ShareSet {
	raw, ok := s.load(ctx, key)
	if !ok {
		return shares.ResetAll(categories)
	}
	return shares.Decode([]byte(raw), categories)
}

func (s *Service) loadBaseline(ctx context.Context, poll models.Poll, label string) *shares.Baseline {
	raw, ok := s.load(ctx, store.BaselineKey(poll.ID))
	if !ok {
		return nil
	}

	var probe map[string]any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil || probe == nil {
		slog.Warn("discarding malformed baseline", "poll_id", poll.ID, "error", err)
		return nil
	}

	return &shares.Baseline{
		Label:  label,
		Shares: shares.Sanitize(probe, poll.Categories),
	}
}

func (s *Service) loadLabel(ctx context.Context, pollID string) string {
	var label string
	s.loadJSON(ctx, store.BaselineLabelKey(pollID), &label)
	return shares.NormalizeLabel(label)
}

// load reads a key, logging and hiding store failures.
func (s *Service) load(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.store.Load(ctx, key)
	if err != nil {
		slog.Warn("failed to load state, using defaults", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

// loadJSON decodes a key into v and reports whether it held valid JSON.
func (s *Service) loadJSON(ctx context.Context, key string, v any) bool {
	raw, ok := s.load(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		slog.Warn("discarding malformed state", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Service) saveJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode state", "key", key, "error", err)
		return
	}
	if err := s.store.Save(ctx, key, string(data)); err != nil {
		slog.Warn("failed to persist state", "key", key, "error", err)
	}
}

func (s *Service) delete(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete state", "key", key, "error", err)
	}
}

func buildState(poll models.Poll, live shares.ShareSet, baseline *shares.Baseline, label string, compare bool) models.MixerState {
	comparing := compare && baseline != nil

	state := models.MixerState{
		Poll:          poll,
		Live:          live,
		BaselineLabel: label,
		Comparing:     comparing,
		Total:         live.Sum(),
		Remaining:     live.Remaining(),
		Gridlines:     shares.DefaultGridlines,
		Bars:          make([]models.Bar, 0, len(poll.Categories)),
	}

	var overlay []shares.Comparison
	if baseline != nil {
		state.Baseline = baseline.Shares
		overlay = shares.Compare(live, baseline.Shares, poll.Categories)
	}

	for i, c := range poll.Categories {
		v := live[c.ID]
		bar := models.Bar{
			CategoryID:       c.ID,
			Label:            c.Label,
			Color:            c.Color,
			Live:             v,
			Max:              shares.MaxAllowed(live, c.ID),
			LiveNearGridline: shares.NearDefaultGridline(v),
		}
		if comparing {
			cmp := overlay[i]
			bar.Baseline = &cmp.Baseline
			bar.BaselineNear = shares.NearDefaultGridline(cmp.Baseline)
			bar.Delta = &cmp.Delta
		}
		state.Bars = append(state.Bars, bar)
	}

	return state
}
