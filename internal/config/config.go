// config предоставляет структуру конфигурации letter-insights
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env          string        `yaml:"env"     env:"ENV" env-default:"local"`
	HTTP         HTTPConfig    `yaml:"http"`
	DB           DBConfig      `yaml:"db"`
	Scraper      ScraperConfig `yaml:"scraper"`
	LLM          LLMConfig     `yaml:"llm"`
	LimitsConfig LimitsConfig  `yaml:"limits"`
	Timeouts     TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"60s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// ScraperConfig — параметры обхода страниц источника.
//
// Все поля имеют рабочие дефолты: сервис запускается и без явной конфигурации.
type ScraperConfig struct {
	// BaseURL — адрес списка публикаций у источника.
	BaseURL string `yaml:"base_url" env:"SCRAPER_BASE_URL" env-default:"https://www.frbsf.org/research-and-insights/publications/economic-letter/"`
	// Timeout — таймаут одного HTTP-запроса.
	Timeout time.Duration `yaml:"timeout" env:"SCRAPER_TIMEOUT" env-default:"30s"`
	// MaxRetries — максимум попыток для повторяемых сбоев (таймаут, 5xx, 429).
	MaxRetries int `yaml:"max_retries" env:"SCRAPER_MAX_RETRIES" env-default:"3"`
	// BackoffBase — базовый интервал экспоненциального backoff между попытками.
	BackoffBase time.Duration `yaml:"backoff_base" env:"SCRAPER_BACKOFF_BASE" env-default:"500ms"`
}

// LLMConfig — настройки генерации ответов через AWS Bedrock.
type LLMConfig struct {
	Region string `yaml:"region" env:"AWS_REGION" env-default:"us-east-1"`
	// Profile — именованный AWS-профиль; пустое значение — стандартная цепочка кредов.
	Profile string `yaml:"profile" env:"AWS_PROFILE_NAME"`
	ModelID string `yaml:"model_id" env:"BEDROCK_MODEL_ID" env-default:"anthropic.claude-sonnet-4-5-20250929-v1:0"`
	// Timeout — таймаут одного вызова модели.
	Timeout time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"45s"`
}

// LimitsConfig — серверные лимиты на выдачу.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	// Верхняя граница для limit.
	Max int32 `yaml:"max" env:"MAX_LIMIT" env-default:"100"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
// Ошибки конфигурации всплывают на старте, а не при первом обращении к зависимости.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper.base_url is required")
	}
	if u, err := url.Parse(c.Scraper.BaseURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("scraper.base_url must be an absolute URL: %q", c.Scraper.BaseURL)
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be > 0")
	}
	if c.Scraper.MaxRetries < 1 {
		return fmt.Errorf("scraper.max_retries must be >= 1")
	}
	if c.Scraper.BackoffBase <= 0 {
		return fmt.Errorf("scraper.backoff_base must be > 0")
	}
	if c.LLM.Region == "" {
		return fmt.Errorf("llm.region is required")
	}
	if c.LLM.ModelID == "" {
		return fmt.Errorf("llm.model_id is required")
	}
	if c.LimitsConfig.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.LimitsConfig.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.LimitsConfig.Default > c.LimitsConfig.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	return nil
}
