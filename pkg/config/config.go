package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func ProvideConfig() Config {
	// missing .env is fine, variables may come from the environment itself
	_ = godotenv.Load()

	return Config{
		BasePath:   requireEnv("BASE_PATH"),
		ServerPort: requireEnvAsInt("SERVER_PORT"),
		PrivateKey: requireEnvAsPrivateKey("PRIVATE_KEY"),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		Redis: Redis{
			Host: requireEnv("REDIS_HOST"),
			Port: requireEnvAsInt("REDIS_PORT"),
		},
		ObjectStore: ObjectStore{
			Endpoint:  requireEnv("OBJECT_STORE_ENDPOINT"),
			AccessKey: requireEnv("OBJECT_STORE_ACCESS_KEY"),
			SecretKey: requireEnv("OBJECT_STORE_SECRET_KEY"),
			Bucket:    requireEnv("OBJECT_STORE_BUCKET"),
			UseSSL:    os.Getenv("OBJECT_STORE_USE_SSL") == "true",
			PublicURL: requireEnv("OBJECT_STORE_PUBLIC_URL"),
		},
		SMTP: SMTP{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: requireEnv("SMTP_USERNAME"),
			Password: requireEnv("SMTP_PASSWORD"),
			From:     requireEnv("SMTP_FROM"),
		},
	}
}

type Config struct {
	BasePath    string
	ServerPort  int
	PrivateKey  *rsa.PrivateKey
	Postgresql  Postgresql
	Redis       Redis
	ObjectStore ObjectStore
	SMTP        SMTP
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type Redis struct {
	Host string
	Port int
}

type ObjectStore struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}

func requireEnvAsPrivateKey(key string) *rsa.PrivateKey {
	value := requireEnv(key)
	privateKey, err := parsePrivateKey([]byte(value))
	if err != nil {
		log.Fatalf("Can't parse %s: %s", key, err.Error())
	}
	return privateKey
}

func parsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not an RSA key")
	}
	return key, nil
}
