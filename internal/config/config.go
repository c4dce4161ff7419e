package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config regroupe la configuration du serveur, chargée depuis l'environnement
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	URL  string `envconfig:"APP_URL" default:"http://localhost:8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"studyflow"`

	// Cloudinary est optionnel: sans ces trois valeurs, l'upload d'avatar
	// est désactivé au démarrage
	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
}

// LoadConfig charge et valide la configuration depuis les variables d'environnement
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return &cfg, nil
}
