// Package config предоставляет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Storage    `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	JWTToken   `yaml:"jwttoken"`
	CORS       `yaml:"cors"`
}

// Storage структура для настройки файлового хранилища
type Storage struct {
	Dir           string `yaml:"dir" env:"STORAGE_DIR" env-default:"./data"`
	UsersFile     string `yaml:"users_file" env-default:"users.json"`
	TasksFile     string `yaml:"tasks_file" env-default:"users_tasks.json"`
	TrashFile     string `yaml:"trash_file" env-default:"users_trash.json"`
	HashPasswords bool   `yaml:"hash_passwords" env:"HASH_PASSWORDS" env-default:"false"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// CORS список источников, которым разрешены запросы к API
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// Load читает конфиг из файла path, значения из окружения имеют приоритет.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if path == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func (c *Config) String() string {
	secret := ""
	if c.JWTSecretKey != "" {
		secret = "***"
	}
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Dir: %s\n"+
			"  Files: %s, %s, %s\n"+
			"  HashPasswords: %t\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"CORS:\n"+
			"  AllowedOrigins: %v\n",
		c.Env,
		c.Dir,
		c.UsersFile,
		c.TasksFile,
		c.TrashFile,
		c.HashPasswords,
		c.Address,
		c.Timeout,
		c.IdleTimeout,
		secret,
		c.TokenTTL,
		c.AllowedOrigins,
	)
}
