package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDialector(t *testing.T) {
	for driver, name := range map[string]string{
		"":         "postgres",
		"postgres": "postgres",
		"mysql":    "mysql",
		"sqlite":   "sqlite",
	} {
		dialector, err := NewDialector(driver, "")
		require.NoError(t, err, driver)
		assert.Equal(t, name, dialector.Name(), driver)
	}

	_, err := NewDialector("mongodb", "")
	assert.Error(t, err)
}
