package ingest

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nwsl-data/nwsl-analytics/warehouse"
)

// Appender is the single write path into the warehouse
type Appender interface {
	AppendPlayerSeasonStats(ctx context.Context, stats []warehouse.PlayerSeasonStat) error
}

// Loader pulls one season of player stats from the primary source, falls
// back to the secondary, and appends the rows
type Loader struct {
	fbref    *FBrefClient
	asa      *ASAClient
	appender Appender
	log      *logrus.Logger
}

// NewLoader wires the two API clients to the warehouse write path
func NewLoader(fbref *FBrefClient, asa *ASAClient, appender Appender, log *logrus.Logger) *Loader {
	return &Loader{fbref: fbref, asa: asa, appender: appender, log: log}
}

// IngestSeason loads one season. The primary source failing is not fatal
// as long as the fallback delivers, but every fallback is logged loudly.
func (l *Loader) IngestSeason(ctx context.Context, season string) error {
	stats, err := l.fromFBref(ctx, season)
	if err != nil {
		l.log.WithFields(logrus.Fields{
			"season": season,
			"error":  err,
		}).Warn("primary stats source failed, falling back")

		stats, err = l.asa.PlayerXGoals(ctx, season)
		if err != nil {
			return fmt.Errorf("both stats sources failed for season %s: %w", season, err)
		}
	}

	if len(stats) == 0 {
		return fmt.Errorf("no player rows returned for season %s", season)
	}

	if err := l.appender.AppendPlayerSeasonStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to append season %s: %w", season, err)
	}

	l.log.WithFields(logrus.Fields{
		"season":  season,
		"players": len(stats),
	}).Info("season ingested")
	return nil
}

func (l *Loader) fromFBref(ctx context.Context, season string) ([]warehouse.PlayerSeasonStat, error) {
	leagueID, err := l.fbref.DiscoverLeague(ctx)
	if err != nil {
		return nil, err
	}
	return l.fbref.PlayerSeasonStats(ctx, leagueID, season)
}
