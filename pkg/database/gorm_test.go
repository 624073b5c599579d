package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"silent":  logger.Silent,
		"ERROR":   logger.Error,
		" info ":  logger.Info,
		"warn":    logger.Warn,
		"verbose": logger.Warn,
		"":        logger.Warn,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewGormDBFromDSNRejectsEmpty(t *testing.T) {
	_, err := NewGormDBFromDSN("", logger.Silent)
	assert.Error(t, err)
}
