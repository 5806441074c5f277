package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	AppInfo AppInfo `yaml:"appInfo"`
	Server  Server  `yaml:"server"`
	Neynar  Neynar  `yaml:"neynar"`
	Empire  Empire  `yaml:"empire"`
}

type AppInfo struct {
	Name       string `yaml:"name"`
	URL        string `yaml:"url"`
	Channel    string `yaml:"channel"`
	CronSecret string `yaml:"cronSecret"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Neynar struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

type Empire struct {
	APIKey       string `yaml:"apiKey"`
	PrivateKey   string `yaml:"privateKey"`
	TokenAddress string `yaml:"tokenAddress"`
	BaseURL      string `yaml:"baseUrl"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Neynar.BaseURL == "" {
		config.Neynar.BaseURL = "https://api.neynar.com"
	}
	if config.Empire.BaseURL == "" {
		config.Empire.BaseURL = "https://www.empirebuilder.world"
	}
	if config.AppInfo.URL == "" {
		config.AppInfo.URL = "https://zabal.art"
	}
	if config.AppInfo.Channel == "" {
		config.AppInfo.Channel = "zao"
	}

	return config, nil
}
