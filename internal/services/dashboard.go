package services

import (
	"context"
	"fmt"
)

// DashboardStats summarises an owner's activity.
// AverageScore is nil until a practice session has been finished.
type DashboardStats struct {
	TranslationsCount     int64    `json:"translations_count"`
	PracticeSessionsCount int64    `json:"practice_sessions_count"`
	ReadingSessionsCount  int64    `json:"reading_sessions_count"`
	AverageScore          *float64 `json:"average_score"`
}

type OwnerCounter interface {
	CountForOwner(ownerID uint) (int64, error)
}

type PracticeStats interface {
	CountSessionsForOwner(ownerID uint) (int64, error)
	AverageScoreForOwner(ownerID uint) (*float64, error)
}

type Dashboard struct {
	translations    OwnerCounter
	readingSessions OwnerCounter
	practice        PracticeStats
}

func NewDashboard(translations, readingSessions OwnerCounter, practice PracticeStats) *Dashboard {
	return &Dashboard{
		translations:    translations,
		readingSessions: readingSessions,
		practice:        practice,
	}
}

func (d *Dashboard) Stats(ctx context.Context, ownerID uint) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)
	if stats.TranslationsCount, err = d.translations.CountForOwner(ownerID); err != nil {
		return nil, fmt.Errorf("count translations: %w", err)
	}
	if stats.ReadingSessionsCount, err = d.readingSessions.CountForOwner(ownerID); err != nil {
		return nil, fmt.Errorf("count reading sessions: %w", err)
	}
	if stats.PracticeSessionsCount, err = d.practice.CountSessionsForOwner(ownerID); err != nil {
		return nil, fmt.Errorf("count practice sessions: %w", err)
	}
	if stats.AverageScore, err = d.practice.AverageScoreForOwner(ownerID); err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	return &stats, nil
}
