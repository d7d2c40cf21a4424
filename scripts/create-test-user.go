package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

var apiBase = "http://localhost:8080"

const (
	testEmail    = "test@example.com"
	testPassword = "testpassword123"
	testName     = "Test User"
)

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func signup(email, password, name string) (*AuthResponse, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})

	resp, err := http.Post(apiBase+"/auth/signup", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// 400 here means the account is left over from an earlier run
	if resp.StatusCode == http.StatusBadRequest {
		return nil, nil
	}

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("signup failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &result, nil
}

func login(email, password string) (*AuthResponse, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &result, nil
}

func main() {
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiBase = envURL
	}

	fmt.Println("Setting up test account...")
	fmt.Println()

	auth, err := signup(testEmail, testPassword, testName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register: %v\n", err)
		os.Exit(1)
	}

	if auth != nil {
		fmt.Printf("  ✓ Registered %s\n", auth.User.Email)
	} else {
		fmt.Println("  Account already exists, logging in instead")
		auth, err = login(testEmail, testPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to login: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ Logged in as %s\n", auth.User.Email)
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("TEST ACCOUNT READY")
	fmt.Println("============================================================")

	fmt.Println("\nCredentials:")
	fmt.Printf("  Email:    %s\n", testEmail)
	fmt.Printf("  Password: %s\n", testPassword)
	fmt.Printf("  User ID:  %s\n", auth.User.ID)

	fmt.Println("\nToken (valid 7 days):")
	fmt.Printf("  %s\n", auth.Token)

	fmt.Println("\nTry it:")
	fmt.Printf("  curl %s/auth/me -H \"Authorization: Bearer %s\"\n", apiBase, auth.Token)
	fmt.Printf("  curl -X POST %s/auth/verify -d '{\"token\":\"%s\"}'\n", apiBase, auth.Token)
	fmt.Printf("\nSign-up page: %s/\n", apiBase)

	// Output JSON for programmatic use
	output := map[string]string{
		"email":    testEmail,
		"password": testPassword,
		"userId":   auth.User.ID,
		"token":    auth.Token,
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("JSON OUTPUT (for scripts):")
	fmt.Println("============================================================")
	jsonOutput, _ := json.MarshalIndent(output, "", "  ")
	fmt.Println(string(jsonOutput))
}
