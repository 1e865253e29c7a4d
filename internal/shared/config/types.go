package config

import "fmt"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GetAddr returns the host:port listen address.
func (c ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds MySQL connection settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AuthConfig holds identity verification settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	AccessTokenMinutes int    `mapstructure:"access_token_minutes"`
}

// RedisConfig holds plan catalog cache settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}
