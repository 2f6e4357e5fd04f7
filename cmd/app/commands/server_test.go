package commands

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunServer(t *testing.T) {
	t.Run("invalid-driver", func(t *testing.T) {
		os.Setenv("DB_DRIVER", "invalid_driver")
		defer os.Unsetenv("DB_DRIVER")

		err := RunServer(context.Background(), "test")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to initialize HTTP server")
	})
}
