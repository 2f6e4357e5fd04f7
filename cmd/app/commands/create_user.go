package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/allisson/school/internal/user/domain"
	userUsecase "github.com/allisson/school/internal/user/usecase"
)

// RunCreateUser creates a back-office user that can authenticate against the API.
// Supports both interactive mode (when password is empty) and non-interactive mode
// (when password is provided). Outputs the user ID and email in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	authUseCase userUsecase.AuthUseCase,
	logger *slog.Logger,
	io IOTuple,
	name string,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", email))

	// Prompt for password when not given as a flag
	if password == "" {
		prompted, err := promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
		password = prompted
	}

	input := userUsecase.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	}

	user, err := authUseCase.CreateUser(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputUserJSON(user, io.Writer)
	} else {
		outputUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// promptForPassword interactively prompts the user for a password.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *domain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", user.Name)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *domain.User, writer io.Writer) {
	result := map[string]string{
		"user_id": user.ID.String(),
		"name":    user.Name,
		"email":   user.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
