package events

import (
	"os"
	"testing"

	"git.solsynth.dev/hypernet/quill/pkg/internal/database"
	"git.solsynth.dev/hypernet/quill/pkg/internal/models"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	viper.Set("database.driver", "sqlite")
	viper.Set("database.dsn", "file::memory:")
	if err := database.NewGorm(); err != nil {
		panic(err)
	}
	if raw, err := database.C.DB(); err == nil {
		raw.SetMaxOpenConns(1)
	}
	if err := database.RunMigration(database.C); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestHandleAccountDeletionRejectsBadPayload(t *testing.T) {
	assert.Error(t, HandleAccountDeletion([]byte("not json")))
	assert.Error(t, HandleAccountDeletion([]byte(`{"id": 0}`)))
	assert.Error(t, HandleAccountDeletion([]byte(`{}`)))
}

func TestHandleAccountDeletion(t *testing.T) {
	account, err := services.EnsureAccount(services.AccountClaims{ID: 42, Name: "Gone"})
	require.NoError(t, err)

	require.NoError(t, HandleAccountDeletion([]byte(`{"id": 42}`)))

	_, err = services.GetAccount(account.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	var deletion models.AccountDeletion
	require.NoError(t, database.C.Where("account_id = ?", account.ID).First(&deletion).Error)
	assert.Equal(t, models.AccountDeletionDone, deletion.Status)

	// Redelivered events are harmless.
	assert.NoError(t, HandleAccountDeletion([]byte(`{"id": 42}`)))
}

func TestSubscribeWithoutNats(t *testing.T) {
	sub, err := SubscribeAccountDeletion()
	assert.NoError(t, err)
	assert.Nil(t, sub)
}
