package main

import (
	"log"

	"github.com/lunaria/lunaria/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ lunaria failed to start: %v", err)
	}
}
