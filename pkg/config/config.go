package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config[C any] interface {
		LoadConfig(name string) (C, error)
	}

	// Watcher - config of the price-list directory watcher.
	Watcher struct {
		FilesDir           string      `mapstructure:"FILES_DIRECTORY"`
		FilesProcessedDir  string      `mapstructure:"FILES_PROCESSED_DIRECTORY"`
		FilesErrorsDir     string      `mapstructure:"FILES_ERRORS_DIRECTORY"`
		FilesQueueSize     int         `mapstructure:"FILES_QUEUE_SIZE"`
		MaxFileSizeBytes   int64       `mapstructure:"MAX_FILE_SIZE_BYTES"`
		DataBatchSize      int         `mapstructure:"DATA_BATCH_SIZE"`
		DataBatchQueueSize int         `mapstructure:"DATA_BATCH_QUEUE_SIZE"`
		WorkersCount       int         `mapstructure:"WORKERS_COUNT"`
		FileScanner        FileScanner `mapstructure:"FILE_SCANNER"`
		Storage            Storage     `mapstructure:"STORAGE"`
	}

	FileScanner struct {
		CheckEveryDuration time.Duration `mapstructure:"CHECK_EVERY_DURATION"`
	}

	APIServer struct {
		Port    int     `mapstructure:"PORT"`
		Storage Storage `mapstructure:"STORAGE"`
		Pricing Pricing `mapstructure:"PRICING"`
		Catalog Catalog `mapstructure:"CATALOG"`
		Remitos Remitos `mapstructure:"REMITOS"`
	}

	Storage struct {
		// Type - mysql or memory
		Type           string `mapstructure:"TYPE"`
		DSN            string `mapstructure:"DSN"`
		MaxConnections int    `mapstructure:"MAX_CONNECTIONS"`
	}

	Pricing struct {
		DefaultMargin  float64 `mapstructure:"DEFAULT_MARGIN"`
		CurrencySymbol string  `mapstructure:"CURRENCY_SYMBOL"`
	}

	// Catalog - where the product catalog is loaded from on start.
	// SourceURL wins over SourcePath, both empty means the storage is used as is.
	Catalog struct {
		SourcePath     string        `mapstructure:"SOURCE_PATH"`
		SourceURL      string        `mapstructure:"SOURCE_URL"`
		FetchTimeout   time.Duration `mapstructure:"FETCH_TIMEOUT"`
		MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	}

	Remitos struct {
		Directory   string `mapstructure:"DIRECTORY"`
		CompanyName string `mapstructure:"COMPANY_NAME"`
	}
)

func (cfg *Watcher) LoadConfig(name string) (*Watcher, error) {
	if err := load(name, cfg); err != nil {
		return nil, fmt.Errorf("can't load config for Watcher: %w", err)
	}
	return cfg, nil
}

func (cfg *APIServer) LoadConfig(name string) (*APIServer, error) {
	if err := load(name, cfg); err != nil {
		return nil, fmt.Errorf("can't load config for APIServer: %w", err)
	}
	return cfg, nil
}

func load(name string, cfg any) error {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	err := v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("can't read config from=%s: %w", name, err)
	}

	err = v.Unmarshal(cfg)
	if err != nil {
		return fmt.Errorf("can't unmarshall config from=%s: %w", name, err)
	}

	return nil
}
