// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Redis         RedisConfiguration
	Minio         MinioConfiguration
	Elasticsearch ElasticsearchConfiguration
	Cache         CacheConfiguration
	Media         MediaConfiguration
	Auth          AuthConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// RedisConfiguration stores data for the rule store connection
type RedisConfiguration struct {
	Addr string
}

// MinioConfiguration stores data for the object storage connection
type MinioConfiguration struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ElasticsearchConfiguration stores data for the audit trail connection
type ElasticsearchConfiguration struct {
	URL string
}

// CacheConfiguration stores the TTLs for the process-wide lookup caches
type CacheConfiguration struct {
	SiteIndexTTL     time.Duration
	NetworkRangesTTL time.Duration
}

// MediaConfiguration stores the object key roots for originals and renders
type MediaConfiguration struct {
	OriginalRoot string
	RenderRoot   string
}

// AuthConfiguration stores the protection group conventions
type AuthConfiguration struct {
	CommunityGroup string
	ShibLoginURL   string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.accessKey", "")
	viper.SetDefault("minio.secretKey", "")
	viper.SetDefault("minio.bucket", "media-originals")
	viper.SetDefault("minio.useSSL", false)
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("cache.siteIndexTTL", "60s")
	viper.SetDefault("cache.networkRangesTTL", "6h")
	viper.SetDefault("media.originalRoot", "original_media")
	viper.SetDefault("media.renderRoot", "rendered_media")
	viper.SetDefault("auth.communityGroup", "entire-community")
	viper.SetDefault("auth.shibLoginURL", "/Shibboleth.sso")
	viper.SetDefault("log.dir", "logging")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
