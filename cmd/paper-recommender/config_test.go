// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetEnvPrefix("PAPER_RECOMMENDER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	v.SetConfigType("yaml")
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestLoadConfigFile(t *testing.T) {
	v := newTestViper()
	require.NoError(t, v.ReadConfig(strings.NewReader(`
graph:
  path: /tmp/papers.db
  query_timeout: 2s
recommend:
  default_limit: 5
  popularity_scale: 50
log:
  format: json
`)))

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/papers.db", c.Graph.Path)
	assert.Equal(t, 2*time.Second, c.Graph.QueryTimeout)
	assert.Equal(t, 5, c.Recommend.DefaultLimit)
	assert.Equal(t, 100, c.Recommend.MaxLimit, "unset keys keep their default")
	assert.Equal(t, 50.0, c.Recommend.PopularityScale)
	assert.Equal(t, "json", c.Log.Format)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("PAPER_RECOMMENDER_SERVER_ADDR", ":9090")
	t.Setenv("PAPER_RECOMMENDER_RECOMMEND_MAX_LIMIT", "25")

	c, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, 25, c.Recommend.MaxLimit)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"max below default", "recommend:\n  default_limit: 20\n  max_limit: 10\n"},
		{"zero scale", "recommend:\n  popularity_scale: 0\n"},
		{"unknown log format", "log:\n  format: xml\n"},
		{"empty path", "graph:\n  path: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			require.NoError(t, v.ReadConfig(strings.NewReader(tt.yaml)))
			_, err := loadConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestParseUserID(t *testing.T) {
	id, err := parseUserID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := parseUserID(raw)
		assert.Error(t, err, raw)
	}
}
