// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mixer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/shares"
	"github.com/danielhkuo/share-mixer/store"
)

// Polls returns every stored poll definition. The default poll is always
// first; malformed entries are skipped.
func (s *Service) Polls(ctx context.Context) []models.Poll {
	polls := []models.Poll{models.DefaultPoll()}

	var stored []models.Poll
	if !s.loadJSON(ctx, store.PollsKey, &stored) {
		return polls
	}

	seen := map[string]bool{models.DefaultPollID: true}
	for _, p := range stored {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		if err := shares.ValidateCategories(p.Categories); err != nil {
			slog.Warn("skipping invalid stored poll", "poll_id", p.ID, "error", err)
			continue
		}
		seen[p.ID] = true
		polls = append(polls, p)
	}
	return polls
}

// Poll returns one poll definition.
func (s *Service) Poll(ctx context.Context, pollID string) (models.Poll, error) {
	for _, p := range s.Polls(ctx) {
		if p.ID == pollID {
			return p, nil
		}
	}
	return models.Poll{}, fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
}

// CreatePoll validates and stores a new poll definition with a fresh ID.
func (s *Service) CreatePoll(ctx context.Context, title string, categories []shares.Category) (models.Poll, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Poll{}, fmt.Errorf("%w: title is required", ErrInvalidPoll)
	}

	categories = shares.FillColors(categories)
	if err := shares.ValidateCategories(categories); err != nil {
		return models.Poll{}, fmt.Errorf("%w: %w", ErrInvalidPoll, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Poll{}, fmt.Errorf("generating poll id: %w", err)
	}

	now := s.now().UTC()
	poll := models.Poll{
		ID:         id.String(),
		Title:      title,
		Categories: categories,
		CreatedAt:  &now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	polls := append(s.Polls(ctx), poll)
	if err := s.savePolls(ctx, polls); err != nil {
		return models.Poll{}, err
	}

	slog.Info("poll created", "poll_id", poll.ID, "categories", len(categories))
	return poll, nil
}

// DeletePoll removes a poll definition and all of its share state.
func (s *Service) DeletePoll(ctx context.Context, pollID string) error {
	if pollID == models.DefaultPollID {
		return ErrDefaultPoll
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	polls := s.Polls(ctx)
	idx := slices.IndexFunc(polls, func(p models.Poll) bool { return p.ID == pollID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
	}

	if err := s.savePolls(ctx, slices.Delete(polls, idx, idx+1)); err != nil {
		return err
	}

	for _, key := range store.PollKeys(pollID) {
		s.delete(ctx, key)
	}

	var active string
	if s.loadJSON(ctx, store.ActivePollKey, &active) && active == pollID {
		s.delete(ctx, store.ActivePollKey)
	}

	slog.Info("poll deleted", "poll_id", pollID)
	return nil
}

// ActivePollID returns the selected poll, falling back to the first poll
// when nothing valid is stored.
func (s *Service) ActivePollID(ctx context.Context) string {
	polls := s.Polls(ctx)

	var active string
	if s.loadJSON(ctx, store.ActivePollKey, &active) {
		for _, p := range polls {
			if p.ID == active {
				return active
			}
		}
	}
	return polls[0].ID
}

// SetActivePoll selects the poll the front end opens by default.
func (s *Service) SetActivePoll(ctx context.Context, pollID string) error {
	if _, err := s.Poll(ctx, pollID); err != nil {
		return err
	}

	data, err := json.Marshal(pollID)
	if err != nil {
		return fmt.Errorf("encoding active poll: %w", err)
	}
	if err := s.store.Save(ctx, store.ActivePollKey, string(data)); err != nil {
		return fmt.Errorf("saving active poll: %w", err)
	}
	return nil
}

// savePolls stores every poll except the built-in default.
func (s *Service) savePolls(ctx context.Context, polls []models.Poll) error {
	stored := make([]models.Poll, 0, len(polls))
	for _, p := range polls {
		if p.ID != models.DefaultPollID {
			stored = append(stored, p)
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encoding polls: %w", err)
	}
	if err := s.store.Save(ctx, store.PollsKey, string(data)); err != nil {
		return fmt.Errorf("saving polls: %w", err)
	}
	return nil
}
