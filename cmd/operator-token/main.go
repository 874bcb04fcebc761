// Command operator-token prints an operator access token signed with
// AUTH_JWT_SECRET, or the bcrypt hash to configure as AUTH_API_KEY_HASH.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/onegreenvn/phishing-campaign-service/internal/services/auth"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	hashKey := flag.String("hash-key", "", "print the bcrypt hash of this API key instead of a token")
	flag.Parse()

	_ = godotenv.Load()

	if *hashKey != "" {
		hash, err := auth.HashAPIKey(*hashKey)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(hash)
		return
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET is not set")
	}
	token, err := auth.NewAuthService(secret, "").IssueToken(*subject, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
