package config

// RedisConfig controls the optional Redis stream notification sink.
// The sink is disabled when Addr is empty.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	StreamPrefix string
}

func loadRedis() RedisConfig {
	return RedisConfig{
		Addr:         envOrDefault(envRedisAddr, ""),
		Password:     envOrDefault(envRedisPassword, ""),
		DB:           intEnvOrDefault(envRedisDB, 0),
		StreamPrefix: envOrDefault(envRedisStreamPrefix, defaultStreamPrefix),
	}
}
