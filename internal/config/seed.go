package config

import "os"

const captionSeedDirEnv = "CAPTION_SEED_DIR"

type SeedConfig struct {
	Dir string
}

func LoadSeedConfig() *SeedConfig {
	return &SeedConfig{
		Dir: os.Getenv(captionSeedDirEnv),
	}
}

func (c *SeedConfig) Enabled() bool {
	return c != nil && c.Dir != ""
}
