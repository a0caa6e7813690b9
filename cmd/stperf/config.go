package main

import "github.com/ilyakaznacheev/cleanenv"

type (
	ServiceConfig struct {
		Port      string `env:"PORT" env-default:"8080"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"debug"`
		SentryDSN string `env:"SENTRY_DSN"`

		DemoWorkers   int `env:"STPERF_DEMO_WORKERS" env-default:"2"`
		DemoDepth     int `env:"STPERF_DEMO_DEPTH" env-default:"4"`
		DemoLoopIters int `env:"STPERF_DEMO_LOOP_ITERS" env-default:"8"`
	}
)

func loadConfig() (ServiceConfig, error) {
	var c ServiceConfig
	err := cleanenv.ReadEnv(&c)
	return c, err
}
