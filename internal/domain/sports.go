package domain

import (
	"context"
	"time"
)

type Fixture struct {
	ID        int
	HomeTeam  string
	AwayTeam  string
	Venue     string
	Kickoff   time.Time
	Status    string
	Elapsed   int
	HomeGoals *int
	AwayGoals *int
}

type Standing struct {
	Rank           int
	Team           string
	Played         int
	Points         int
	GoalDifference int
}

// SportsDataService is the remote football data source.
type SportsDataService interface {
	FixturesOn(ctx context.Context, day time.Time) ([]Fixture, error)
	LiveFixtures(ctx context.Context) ([]Fixture, error)
	NextFixtures(ctx context.Context, count int) ([]Fixture, error)
	Standings(ctx context.Context) ([]Standing, error)
}
