package cfg

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverRedis = "redis"
	DriverMongo = "mongo"
)

type Port int

func (p Port) String() string {
	return ":" + strconv.Itoa(int(p))
}

type ConfigDatabase struct {
	Driver string `env:"DB_DRIVER" env-default:"redis"`
	DbConn string `env:"DB_CONNECTION_STRING"`
}

type Cache struct {
	CacheAddr  string        `env:"CACHE_ADDR" env-default:"localhost:6379"`
	DefaultTTL time.Duration `env:"CACHE_DEFAULT_TTL" env-default:"24h"`
}

type AsynqConfig struct {
	Concurrency int         `env:"WQ_CONCURRENCY" env-default:"10"`
	MaxRetry    int         `env:"WQ_MAX_RETRY" env-default:"3"`
	Queues      AsynqQueues `env:"WQ_QUEUES"`
}

// AsynqQueues maps a queue name to its priority weight on the worker.
type AsynqQueues map[string]int

// SetValue lets cleanenv decode WQ_QUEUES from a JSON object.
func (aq *AsynqQueues) SetValue(s string) error {
	if s == "" {
		return nil
	}

	queues := make(AsynqQueues)
	if err := json.Unmarshal([]byte(s), &queues); err != nil {
		return fmt.Errorf("invalid WQ_QUEUES: %w", err)
	}

	*aq = queues
	return nil
}

func (aq AsynqQueues) Contains(queueName string) bool {
	_, exists := aq[queueName]
	return exists
}

// Names returns the configured queue names in a stable order.
func (aq AsynqQueues) Names() []string {
	names := make([]string, 0, len(aq))
	for k := range aq {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (aq AsynqQueues) IsValid() bool {
	if len(aq) == 0 {
		return false
	}

	for k, v := range aq {
		if k == "" || v <= 0 {
			return false
		}
	}

	return true
}

func DefaultQueues() AsynqQueues {
	return AsynqQueues{
		"celery_default": 1,
		"celery_delete":  3,
		"celery_upload":  3,
	}
}

type Config struct {
	ApiPort        Port   `env:"API_PORT" env-default:"8080"`
	StaticDir      string `env:"STATIC_DIR" env-default:"./static"`
	Testing        bool   `env:"TESTING" env-default:"false"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
	LogSource      bool   `env:"LOG_SOURCE" env-default:"false"`
	ConfigDatabase ConfigDatabase
	Cache          Cache
	AsynqConfig    AsynqConfig
}

var (
	cfg    Config
	loaded bool
)

// Get reads the environment on first use; later calls return the same values
// unless SetConfig replaced them.
func Get() Config {
	if loaded {
		return cfg
	}

	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		panic(err)
	}

	if len(c.AsynqConfig.Queues) == 0 {
		c.AsynqConfig.Queues = DefaultQueues()
	}

	if !c.AsynqConfig.Queues.IsValid() {
		panic("invalid WQ_QUEUES")
	}

	cfg = c
	loaded = true
	return cfg
}

func SetConfig(c Config) {
	cfg = c
	loaded = true
}
