// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// envKeyReplacer maps nested keys to environment names, so graph.path
// reads PAPER_RECOMMENDER_GRAPH_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers every key of def with v. AutomaticEnv only sees
// keys viper already knows about, so each one needs a default.
func setDefaults(v *viper.Viper, def types.Config) {
	v.SetDefault("graph.path", def.Graph.Path)
	v.SetDefault("graph.query_timeout", def.Graph.QueryTimeout)

	v.SetDefault("recommend.default_limit", def.Recommend.DefaultLimit)
	v.SetDefault("recommend.max_limit", def.Recommend.MaxLimit)
	v.SetDefault("recommend.popularity_scale", def.Recommend.PopularityScale)

	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.read_timeout", def.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", def.Server.WriteTimeout)

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}
