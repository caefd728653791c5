package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/brigade/internal/sections"
)

const keyPrefix = "brigade.nav.last."

// KeyFor returns the fixed storage key holding a group's last-visited
// section id.
func KeyFor(g sections.Group) string {
	return keyPrefix + string(g)
}

// LastVisited records the last-visited section id per group for one
// browsing session. It does not validate ids; callers check them against
// their registry.
type LastVisited struct {
	store     Store
	sessionID string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewLastVisited scopes store to sessionID.
func NewLastVisited(store Store, sessionID string, logger *zap.Logger) *LastVisited {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LastVisited{
		store:     store,
		sessionID: sessionID,
		timeout:   2 * time.Second,
		logger:    logger,
	}
}

// Get returns the stored section id for g. Backend failures read as absent.
func (l *LastVisited) Get(g sections.Group) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	v, err := l.store.Load(ctx, l.sessionID, KeyFor(g))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.logger.Warn("reading last visited section",
				zap.String("session", l.sessionID), zap.String("group", string(g)), zap.Error(err))
		}
		return "", false
	}
	return v, v != ""
}

// Set stores sectionID for g. Backend failures are logged and dropped.
func (l *LastVisited) Set(g sections.Group, sectionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	if err := l.store.Save(ctx, l.sessionID, KeyFor(g), sectionID); err != nil {
		l.logger.Warn("saving last visited section",
			zap.String("session", l.sessionID), zap.String("group", string(g)), zap.Error(err))
	}
}
