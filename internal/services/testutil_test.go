package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"farmpanel/internal/config"
	"farmpanel/internal/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a throwaway sqlite database and returns a
// config pointing at it. The database is removed when the test ends.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	testDBPath := fmt.Sprintf("%s/farmpanel_test_%d.db", os.TempDir(), time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		Session: config.SessionConfig{
			Secret:     "test-secret-key-for-testing-only",
			ExpiresIn:  "24h",
			Issuer:     "farmpanel-test",
			CookieName: "farm_session",
		},
		Security: config.SecurityConfig{
			PasswordScheme: "bcrypt",
			BcryptCost:     10,
		},
		Webcam: config.WebcamConfig{
			BackendURL: "http://localhost:8081",
			Timeout:    "2s",
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if models.DB != nil {
			if sqlDB, err := models.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		os.Remove(testDBPath)
		models.DB = nil
	})

	return cfg
}

// seedEquipment inserts equipment rows directly
func seedEquipment(t *testing.T, items ...models.Equipment) {
	t.Helper()
	for i := range items {
		require.NoError(t, models.DB.Create(&items[i]).Error)
	}
}
