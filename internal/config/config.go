package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del portal.
type Config struct {
	HTTPPort        string   `env:"PORT" envDefault:"3000"`
	DatabaseURL     string   `env:"DATABASE_URL,required"`
	SessionSecret   string   `env:"SESSION_SECRET,required"`
	SessionTTLHours int      `env:"SESSION_TTL_HOURS" envDefault:"24"`
	TenantID        string   `env:"TENANT_ID,required"`
	ClientID        string   `env:"CLIENT_ID,required"`
	ClientSecret    string   `env:"CLIENT_SECRET,required"`
	RedirectURI     string   `env:"REDIRECT_URI,required"`
	AllowedDomains  []string `env:"ALLOWED_EMAIL_DOMAINS" envSeparator:"," envDefault:"asoiu.edu.az,ufaz.edu.az"`
	UploadDir       string   `env:"UPLOAD_DIR" envDefault:"uploads"`
	RedisAddr       string   `env:"REDIS_ADDR"`
	RedisPassword   string   `env:"REDIS_PASSWORD"`
	RedisDB         int      `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
