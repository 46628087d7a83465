package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run in an empty directory so a developer's config.yaml is not picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "netcanvas.db", cfg.DBPath)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "http://localhost:3001/api", cfg.APIBaseURL)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestOrigins(t *testing.T) {
	assert.Nil(t, (&Config{}).Origins())
	assert.Nil(t, (&Config{AllowedOrigins: "  "}).Origins())
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://canvas.example.com"},
		(&Config{AllowedOrigins: " http://localhost:5173 , https://canvas.example.com ,"}).Origins(),
	)
}
