package api

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"cloudguide/internal/logging"
)

func TestMain(m *testing.M) {
	logging.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}
