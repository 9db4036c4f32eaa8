package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/motorent/rental-service/pkg/kafka"
	"github.com/motorent/rental-service/pkg/logger"
	"github.com/motorent/rental-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RENTAL_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"RENTAL_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

// Penalty carries the overdue fine business constants. The thresholds come
// straight from rental policy; change them in the environment, not in code.
type Penalty struct {
	DendaRate  float64 `envconfig:"PENALTY_DENDA_RATE" default:"0.5"`
	Multiplier float64 `envconfig:"PENALTY_MULTIPLIER" default:"1.5"`
	MinuteTier int64   `envconfig:"PENALTY_MINUTE_TIER" default:"120"`
	HourTier   int64   `envconfig:"PENALTY_HOUR_TIER" default:"480"`
}

type Sweep struct {
	Spec string `envconfig:"OVERDUE_SWEEP_SPEC" default:"*/5 * * * *"`
}

type Config struct {
	Server   HTTPServer `yaml:"server"`
	Database postgres.Config
	Kafka    kafka.Config
	Penalty  Penalty
	Sweep    Sweep
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
