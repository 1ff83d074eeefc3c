package bundb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"
)

func TestModuleNames(t *testing.T) {
	migrators := map[string]*migrate.Migrator{
		"wordle": nil,
		"zeta":   nil,
		"user":   nil,
		"alpha":  nil,
	}
	require.Equal(t, []string{"user", "wordle", "alpha", "zeta"}, ModuleNames(migrators))
}
