package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smartwatch_survey.xlsx", cfg.Data.SurveyFile)
	assert.Equal(t, 4, cfg.Cluster.K)
	assert.Equal(t, int64(2023), cfg.Cluster.Seed)
	assert.Equal(t, 25, cfg.Cluster.Restarts)
	assert.Equal(t, 10, cfg.Cluster.ElbowMax)
	assert.Equal(t, "cluster_summary.csv", cfg.Output.SummaryFile)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SURVEY_FILE", "other.csv")
	t.Setenv("CLUSTER_K", "6")
	t.Setenv("CLUSTER_SEED", "99")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "other.csv", cfg.Data.SurveyFile)
	assert.Equal(t, 6, cfg.Cluster.K)
	assert.Equal(t, int64(99), cfg.Cluster.Seed)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("CLUSTER_K", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cluster.K)
}

func TestLoad_RejectsElbowBelowK(t *testing.T) {
	t.Setenv("CLUSTER_K", "8")
	t.Setenv("ELBOW_MAX_K", "5")

	_, err := Load()
	assert.Error(t, err)
}
