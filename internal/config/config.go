// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	CatalogURL    string `yaml:"catalog_url"`     // Источник каталога: http(s)://, s3:// или путь к файлу
	StateDir      string `yaml:"state_dir"`       // Директория для сохраняемого состояния (плейлисты, тема)
	Theme         string `yaml:"theme"`           // Тема по умолчанию, если не сохранена в состоянии
	AwsBucketName string `yaml:"aws_bucket_name"` // Бакет для s3:// каталогов и публикации плейлистов
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// LoadConfig загружает конфигурацию приложения из указанного файла
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.StateDir == "" {
		config.StateDir = "~/.tunebox-state"
	}
	if config.Theme == "" {
		config.Theme = "dark"
	}

	// Раскрываем тильду в пути к состоянию
	config.StateDir = strings.Replace(config.StateDir, "~", home, 1)

	return config, nil
}
