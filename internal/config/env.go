package config

import (
	"os"
	"strconv"
)

// applyEnv layers environment variables over whatever the file provided.
// Unset or malformed values are ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv("GTD_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := getEnvInt("GTD_HISTORY_LIMIT"); v > 0 {
		c.History.Limit = v
	}
	if v := getEnvInt64("GTD_QUOTA_BYTES"); v != 0 {
		c.Quota.Bytes = v
	}
	if v := os.Getenv("GTD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("GTD_LOG_ENCODING"); v != "" {
		c.Log.Encoding = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvInt64(key string) int64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return num
}
