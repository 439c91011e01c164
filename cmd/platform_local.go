//go:build !gcloud

package main

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/logging"
)

func newRedisOptions(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "danmaku-scheduler"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("danmaku-playback"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
