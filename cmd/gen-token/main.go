// Command gen-token prints a bearer token signed with the configured
// auth.jwt_secret, for calling the card API when authentication is enabled.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/trello-manager/internal/config"
	"github.com/phrazzld/trello-manager/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "dev", "token subject")
	flag.Parse()

	token, err := generate(context.Background(), *subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gen-token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func generate(ctx context.Context, subject string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Auth.Enabled() {
		return "", fmt.Errorf("auth.jwt_secret is not set (TRELLO_AUTH_JWT_SECRET)")
	}

	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken(ctx, subject)
}
