package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env if present; real deployments set the environment
// directly and have no file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}
