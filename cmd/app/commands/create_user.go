package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/allisson/minidrive/internal/app"
	"github.com/allisson/minidrive/internal/config"
	userDomain "github.com/allisson/minidrive/internal/user/domain"
	userUsecase "github.com/allisson/minidrive/internal/user/usecase"
)

// RunCreateUser registers a new user account from the command line.
// The password goes through the same strength validation and Argon2id hashing
// as the registration endpoint. Outputs the created user in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(ctx context.Context, name, email, password, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("creating new user", slog.String("email", email))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get user use case from container
	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUseCase.RegisterUser(ctx, userUsecase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCreateUserJSON(user)
	} else {
		outputCreateUserText(user)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// outputCreateUserText outputs the result in human-readable text format.
func outputCreateUserText(user *userDomain.User) {
	fmt.Println("User created successfully!")
	fmt.Printf("ID: %s\n", user.ID.String())
	fmt.Printf("Name: %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
}

// outputCreateUserJSON outputs the result in JSON format for machine consumption.
func outputCreateUserJSON(user *userDomain.User) {
	result := map[string]string{
		"id":    user.ID.String(),
		"name":  user.Name,
		"email": user.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Println(string(jsonBytes))
}
