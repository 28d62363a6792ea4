package config

import (
	"fmt"

	"bounty-board-service/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Market   MarketConfig   `mapstructure:"market"`
	Storage  StorageConfig  `mapstructure:"storage"`
	NFT      NFTConfig      `mapstructure:"nft"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the Postgres connection string, unless DATABASE_URL overrides it.
func (d DatabaseConfig) DSN() string {
	if url := viper.GetString("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MarketConfig carries the protocol parameters of the bounty market.
type MarketConfig struct {
	FeeNumerator      int64  `mapstructure:"fee_numerator"`
	FeeDenominator    int64  `mapstructure:"fee_denominator"`
	TreasuryAddress   string `mapstructure:"treasury_address"`
	VotingWindowHours int    `mapstructure:"voting_window_hours"`
}

// StorageConfig holds the R2 bucket used for claim evidence files.
type StorageConfig struct {
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Bucket          string `mapstructure:"bucket"`
	CDNBaseURL      string `mapstructure:"cdn_base_url"`
}

// NFTConfig points at the receipt token issuance service.
type NFTConfig struct {
	ServiceURL          string `mapstructure:"service_url"`
	ServiceToken        string `mapstructure:"service_token"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout or file
	File   string `mapstructure:"file"`
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/bounty-board")

	viper.SetDefault("server.port", "5300")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "bounty_board")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("market.fee_numerator", 25)
	viper.SetDefault("market.fee_denominator", 1000)
	viper.SetDefault("market.voting_window_hours", 48)
	viper.SetDefault("storage.bucket", "bounty-evidence")
	viper.SetDefault("nft.poll_interval_seconds", 10)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
