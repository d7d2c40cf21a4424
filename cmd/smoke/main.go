package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "flow":
		flowCmd(apiURL)
	case "seed":
		seedCmd(apiURL, args)
	case "check":
		checkCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Doorway Smoke Tool - Development tool for exercising the auth API

USAGE:
  smoke <command> [options]

COMMANDS:
  flow      Walk the full credential lifecycle, including the rejection paths
  seed      Register throwaway accounts for manual testing
  check     Verify a token and print the user behind it
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Run the full lifecycle against a local server
  smoke flow

  # Register 10 throwaway accounts
  smoke seed --count=10

  # Inspect a token
  smoke check --token=eyJhbGci...`)
}

func flowCmd(apiURL string) {
	client := NewAPIClient(apiURL)

	email := uniqueEmail("smoke")
	password := "testpassword123"

	fmt.Println("=== Doorway Smoke Test: Full Flow ===")
	fmt.Println()

	// 1. Fresh signup
	fmt.Print("Creating account... ")
	created, token, err := client.Signup(email, password, "Smoke Tester")
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (user: %s)\n", created.Email)

	// 2. Same email again must be rejected
	fmt.Print("Re-registering same email... ")
	resp, err := client.post("/auth/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Smoke Tester",
	}, "")
	if err := expectStatus(resp, err, http.StatusBadRequest); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK (rejected)")

	// 3. Wrong password must be rejected
	fmt.Print("Logging in with wrong password... ")
	resp, err = client.post("/auth/login", map[string]string{
		"email":    email,
		"password": "wrongpassword",
	}, "")
	if err := expectStatus(resp, err, http.StatusUnauthorized); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK (rejected)")

	// 4. Correct login
	fmt.Print("Logging in... ")
	loggedIn, token, err := client.Login(email, password)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	if loggedIn.ID != created.ID {
		fmt.Printf("FAILED\n  Error: login returned user %s, signup created %s\n", loggedIn.ID, created.ID)
		os.Exit(1)
	}
	fmt.Println("OK")

	// 5. Current user behind the token
	fmt.Print("Fetching current user... ")
	me, err := client.Me(token)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	if me.ID != created.ID {
		fmt.Printf("FAILED\n  Error: /auth/me returned user %s, expected %s\n", me.ID, created.ID)
		os.Exit(1)
	}
	fmt.Println("OK")

	// 6. Explicit verification
	fmt.Print("Verifying token... ")
	verified, err := client.Verify(token)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	if verified.ID != created.ID {
		fmt.Printf("FAILED\n  Error: verify returned user %s, expected %s\n", verified.ID, created.ID)
		os.Exit(1)
	}
	fmt.Println("OK")

	// 7. Garbage token must be rejected
	fmt.Print("Verifying garbage token... ")
	resp, err = client.post("/auth/verify", map[string]string{
		"token": "not-a-real-token",
	}, "")
	if err := expectStatus(resp, err, http.StatusUnauthorized); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK (rejected)")

	// Print summary
	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  ALL CHECKS PASSED")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Printf("  Account:  %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Printf("  User ID:  %s\n", created.ID)
	fmt.Println()
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	count := fs.Int("count", 5, "Number of accounts to register")
	fs.Parse(args)

	if *count < 1 {
		fmt.Println("Error: --count must be at least 1")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Printf("Registering %d accounts...\n\n", *count)

	for i := 0; i < *count; i++ {
		email := uniqueEmail("seed")
		name := fmt.Sprintf("Seed User %d", i+1)

		user, _, err := client.Signup(email, "testpassword123", name)
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED: %v\n", i+1, *count, err)
			continue
		}

		fmt.Printf("  [%d/%d] %s (%s)\n", i+1, *count, user.Email, user.ID)
	}

	fmt.Println()
	fmt.Println("Done! All accounts use password: testpassword123")
}

func checkCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	token := fs.String("token", "", "Token to verify (required)")
	fs.Parse(args)

	if *token == "" {
		fmt.Println("Error: --token is required")
		fmt.Println("\nUsage: smoke check --token=eyJhbGci...")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	user, err := client.Verify(*token)
	if err != nil {
		fmt.Printf("Token rejected: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Token is valid.")
	fmt.Println()
	fmt.Printf("  User ID: %s\n", user.ID)
	fmt.Printf("  Email:   %s\n", user.Email)
	fmt.Printf("  Name:    %s\n", user.Name)
	fmt.Printf("  Created: %s\n", user.CreatedAt)
}

// expectStatus drains a response expected to carry a specific rejection code.
func expectStatus(resp *http.Response, err error, want int) error {
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("got status %d, want %d: %s", resp.StatusCode, want, string(bodyBytes))
	}

	return nil
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano()%100000)
}
