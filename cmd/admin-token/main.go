// Command admin-token prints the bcrypt hash to put in ADMIN_TOKEN_HASH.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/playpool/pocketball/internal/admin"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "plain admin token (defaults to $ADMIN_TOKEN)")
	flag.Parse()

	if *token == "" {
		log.Fatal("Provide a token with -token or ADMIN_TOKEN")
	}
	if len(*token) < 12 {
		log.Printf("WARNING: admin token is shorter than 12 characters")
	}

	hash, err := admin.HashToken(*token)
	if err != nil {
		log.Fatalf("Failed to hash token: %v", err)
	}

	log.Println("Set this in the server environment:")
	fmt.Printf("ADMIN_TOKEN_HASH=%s\n", hash)
}
