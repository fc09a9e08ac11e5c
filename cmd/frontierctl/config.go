package main

import (
	"os"
	"strings"

	"github.com/ccpaging/log4go"
	"gopkg.in/yaml.v2"

	"github.com/NEOS-AI/stract-frontier/frontier"
)

// TuningConfig is the on-disk shape of the --config YAML file, mirroring
// walker's WalkerConfig: every field has a sane default from
// frontier.DefaultTuning, and the file only needs to name the knobs an
// operator actually wants to change.
type TuningConfig struct {
	WriteBufferMB int `yaml:"write_buffer_mb"`
	BlockCacheMB  int `yaml:"block_cache_mb"`
	ShardCache    int `yaml:"shard_cache_entries"`
}

// LoadTuning reads path (if non-empty) and applies it on top of
// frontier.DefaultTuning. A missing file is not an error — like
// walker.readConfig, frontierctl is happy to run on defaults.
func LoadTuning(path string) frontier.Tuning {
	t := frontier.DefaultTuning()
	if path == "" {
		return t
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			log4go.Info("frontierctl: no config file at %v, using defaults", path)
			return t
		}
		panic(err.Error())
	}

	var cfg TuningConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		panic(err.Error())
	}

	if cfg.WriteBufferMB > 0 {
		size := uint64(cfg.WriteBufferMB) << 20
		t.Domains.WriteBufferSize = size
		t.Urls.WriteBufferSize = size
		t.Redirects.WriteBufferSize = size
	}
	if cfg.BlockCacheMB > 0 {
		size := uint64(cfg.BlockCacheMB) << 20
		t.Domains.BlockCacheSize = size
		t.Urls.BlockCacheSize = size
		t.Redirects.BlockCacheSize = size
	}
	if cfg.ShardCache > 0 {
		t.ShardCache = cfg.ShardCache
	}
	return t
}
