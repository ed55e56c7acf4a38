package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/scott-daily/time-tracker-api/internal/auth"
)

func main() {
	// Flags for customization
	secret := flag.String("secret", "", "HS256 signing secret (development)")
	privateKeyPath := flag.String("key", "", "Path to RS256 private key PEM")
	uid := flag.String("uid", "dev-user", "Subject uid for the token")
	name := flag.String("name", "Dev User", "Display name for the token")
	email := flag.String("email", "dev@localhost", "Email for the token")
	issuer := flag.String("issuer", "time-tracker-api", "Token issuer")
	expMins := flag.Int("exp", 60*24, "Token expiration in minutes (default: 1 day)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	expiration := time.Duration(*expMins) * time.Minute

	var signer *auth.Signer
	var err error
	switch {
	case *privateKeyPath != "":
		signer, err = auth.NewRS256Signer(*privateKeyPath, *issuer, expiration)
	case *secret != "":
		signer = auth.NewHS256Signer(*secret, *issuer, expiration)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of -secret or -key is required")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading signing key: %v\n", err)
		os.Exit(1)
	}

	token, err := signer.Sign(*uid, *name, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"uid":          *uid,
			"email":        *email,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(expiration)
		fmt.Println("Token Generated")
		fmt.Println("===============")
		fmt.Printf("UID:      %s\n", *uid)
		fmt.Printf("Email:    %s\n", *email)
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -H 'Authorization: Bearer <token>' http://localhost:8080/jobs\n")
	}
}
