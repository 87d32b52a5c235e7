package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从 ./configs/config.yaml 加载配置，环境变量 YATUBE_* 可覆盖
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("YATUBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.cors_origins", []string{})

	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_idle", 10)
	viper.SetDefault("database.max_open", 50)
	viper.SetDefault("database.max_lifetime", 30)
	viper.SetDefault("database.auto_migrate", true)

	viper.SetDefault("redis.addr", "127.0.0.1:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.pool_size", 20)

	viper.SetDefault("feed.page_size", 10)
	viper.SetDefault("feed.cache_ttl", 20)
	viper.SetDefault("feed.cache_backend", "redis")
	viper.SetDefault("feed.flush_on_write", true)
	viper.SetDefault("feed.flush_on_binlog", false)

	viper.SetDefault("jwt.secret", "yatube")
	viper.SetDefault("jwt.issuer", "Yatube")
	viper.SetDefault("jwt.expire_hours", 24)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.rps", 2)
	viper.SetDefault("rate_limit.burst", 10)

	viper.SetDefault("elastic.post_index", "yatube-posts")
	viper.SetDefault("mongo.database", "yatube")
	viper.SetDefault("kafka_post_consumer.topic", "canal-yatube-posts")
	viper.SetDefault("kafka_post_consumer.group_id", "yatube-post-indexer")

	viper.SetDefault("cron.media_cleanup", "0 */10 * * * *")
	viper.SetDefault("cron.media_max_age_hours", 24)
	viper.SetDefault("cron.search_reindex", "0 30 3 * * *")
	viper.SetDefault("cron.search_reindex_days", 1)
}
