package models

import (
	"time"

	"github.com/danielhkuo/share-mixer/shares"
)

// Default poll constants
const (
	DefaultPollID    = "canada"
	DefaultPollTitle = "Canada Poll Share Mixer"
)

// Notice version shown on first visit
const (
	NoticeVersion = "v1"
)

// DefaultCategories are the parties of the built-in poll.
func DefaultCategories() []shares.Category {
	return []shares.Category{
		{ID: "cpc", Label: "CPC", Color: "#3b82f6"},
		{ID: "lib", Label: "LIB", Color: "#ef4444"},
		{ID: "ndp", Label: "NDP", Color: "#f97316"},
		{ID: "green", Label: "Green", Color: "#10b981"},
		{ID: "ppc", Label: "PPC", Color: "#a855f7"},
		{ID: "ind", Label: "IND", Color: "#64748b"},
		{ID: "other", Label: "Other", Color: "#52525b"},
	}
}

// DefaultPoll is used whenever no valid poll list has been stored.
func DefaultPoll() Poll {
	return Poll{
		ID:         DefaultPollID,
		Title:      DefaultPollTitle,
		Categories: DefaultCategories(),
	}
}

// Request types

type CreatePollRequest struct {
	Title      string            `json:"title"`
	Categories []shares.Category `json:"categories"`
}

type SetActivePollRequest struct {
	PollID string `json:"poll_id"`
}

type SetShareRequest struct {
	Value *float64 `json:"value"`
}

type SnapshotRequest struct {
	Label string `json:"label"`
}

type BaselineLabelRequest struct {
	Label string `json:"label"`
}

// Response types

type CreatePollResponse struct {
	Poll     Poll   `json:"poll"`
	AdminKey string `json:"admin_key"`
}

type PollListResponse struct {
	Polls    []Poll `json:"polls"`
	ActiveID string `json:"active_id"`
}

type ActivePollResponse struct {
	PollID string `json:"poll_id"`
}

type NoticeResponse struct {
	Version   string `json:"version"`
	Dismissed bool   `json:"dismissed"`
}

// StatsResponse is the Stats Proxy success envelope.
type StatsResponse struct {
	OK                    bool    `json:"ok"`
	ChannelID             string  `json:"channelId"`
	Title                 *string `json:"title"`
	SubscriberCount       *int64  `json:"subscriberCount"`
	HiddenSubscriberCount bool    `json:"hiddenSubscriberCount"`
	FetchedAt             string  `json:"fetchedAt"`
}

// StatsErrorResponse is the Stats Proxy failure envelope.
type StatsErrorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Domain types

type Poll struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Categories []shares.Category `json:"categories"`
	CreatedAt  *time.Time        `json:"created_at,omitempty"`
}

// Bar is one category as the chart shows it.
type Bar struct {
	CategoryID       string   `json:"category_id"`
	Label            string   `json:"label"`
	Color            string   `json:"color"`
	Live             float64  `json:"live"`
	Max              float64  `json:"max"`
	LiveNearGridline bool     `json:"live_near_gridline"`
	Baseline         *float64 `json:"baseline,omitempty"`
	BaselineNear     bool     `json:"baseline_near_gridline,omitempty"`
	Delta            *float64 `json:"delta,omitempty"`
}

// MixerState is the read-only view of one poll's shares.
type MixerState struct {
	Poll          Poll            `json:"poll"`
	Live          shares.ShareSet `json:"live"`
	Baseline      shares.ShareSet `json:"baseline,omitempty"`
	BaselineLabel string          `json:"baseline_label"`
	Comparing     bool            `json:"comparing"`
	Total         float64         `json:"total"`
	Remaining     float64         `json:"remaining"`
	Gridlines     []float64       `json:"gridlines"`
	Bars          []Bar           `json:"bars"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
