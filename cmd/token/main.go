// Command token issues an operator access token for the payroll API.
//
//	go run ./cmd/token -user payroll-clerk
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/flash-erp/erp-backend-go/internal/config"
	"github.com/flash-erp/erp-backend-go/internal/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "operator username (required)")
	role := flag.String("role", "operator", "role claim")
	ttl := flag.String("ttl", "", "token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	flag.Parse()

	if *user == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	expiration := cfg.JWT.AccessExpiration
	if *ttl != "" {
		expiration = *ttl
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, expiration).GenerateAccessToken(*user, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	fmt.Println(token)
}
