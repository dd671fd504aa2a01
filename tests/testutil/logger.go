package testutil

import (
	"io"

	"github.com/quantmind-br/ymaps2gpx/internal/utils"
)

// NewTestLogger returns a silent logger for tests
func NewTestLogger() *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:  "error",
		Format: "json",
		Output: io.Discard,
	})
}
