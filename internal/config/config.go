package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings agrupa la configuración del servicio.
// Se carga desde config.yaml y se puede pisar con env vars SHELTER_*
// (ej: SHELTER_SUPABASE_URL, SHELTER_POSTGRES_DSN).
type Settings struct {
	Port string

	Log struct {
		Level  string // debug|info|warn|error
		Format string // text|json
	}

	Session struct {
		// File es donde se persiste el usuario autenticado entre reinicios
		// (análogo del localStorage del cliente original).
		File string
	}

	Supabase struct {
		URL     string
		Key     string
		Timeout time.Duration
	}

	Postgres struct {
		DSN string
	}
}

// Load lee config.yaml (si existe) y las env vars en Settings.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	return &settings, nil
}

func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/animal-shelter")

	viper.SetEnvPrefix("shelter")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("session.file", "shelter-session.json")
	viper.SetDefault("supabase.timeout", 10*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		// sin archivo de config también funciona (solo env/defaults)
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
