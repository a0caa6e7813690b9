package logutil

import (
	"github.com/rs/zerolog"
)

// LevelSampler lets through every event at or above Level.
type LevelSampler struct {
	Level zerolog.Level
}

func (l LevelSampler) Sample(lvl zerolog.Level) bool {
	return lvl >= l.Level
}
