package config

// Config 配置主体
type Config struct {
	Server            ServerConfig            `mapstructure:"server"`
	DB                DBConfig                `mapstructure:"database"`
	Redis             RedisConfig             `mapstructure:"redis"`
	Feed              FeedConfig              `mapstructure:"feed"`
	JWT               JWTConfig               `mapstructure:"jwt"`
	RateLimit         RateLimitConfig         `mapstructure:"rate_limit"`
	MinIO             MinIOConfig             `mapstructure:"minio"`
	Elastic           ElasticConfig           `mapstructure:"elastic"`
	Mongo             MongoConfig             `mapstructure:"mongo"`
	Kafka             KafkaConfig             `mapstructure:"kafka"`
	KafkaPostConsumer KafkaPostConsumerConfig `mapstructure:"kafka_post_consumer"`
	Logstash          LogstashConfig          `mapstructure:"logstash"`
	Cron              CronConfig              `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	CORSOrigins []string `mapstructure:"cors_origins"` // 为空时放行所有来源
}

// DBConfig 数据库配置，Driver 取值 mysql / postgres / sqlite
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// FeedConfig 信息流配置
type FeedConfig struct {
	PageSize      int    `mapstructure:"page_size"`
	CacheTTL      int    `mapstructure:"cache_ttl"` // 秒
	CacheBackend  string `mapstructure:"cache_backend"`
	FlushOnWrite  bool   `mapstructure:"flush_on_write"`
	FlushOnBinlog bool   `mapstructure:"flush_on_binlog"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RateLimitConfig 写接口限流，按用户维度
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	PostIndex string `mapstructure:"post_index"`
}

type MongoConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaPostConsumerConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type LogstashConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// CronConfig 定时任务表达式（带秒）
type CronConfig struct {
	MediaCleanup      string `mapstructure:"media_cleanup"`
	MediaMaxAgeHours  int    `mapstructure:"media_max_age_hours"`
	SearchReindex     string `mapstructure:"search_reindex"`
	SearchReindexDays int    `mapstructure:"search_reindex_days"`
}
