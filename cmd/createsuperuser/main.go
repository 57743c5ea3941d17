package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/oksasatya/go-user-auth-api/config"
	userapp "github.com/oksasatya/go-user-auth-api/internal/application"
	pginfra "github.com/oksasatya/go-user-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	if err := run(cfg, logger, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logrus.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(stdout)
	email := fs.String("email", "", "superuser email")
	password := fs.String("password", "", "superuser password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		v, err := prompt(bufio.NewReader(stdin), stdout, "Email: ")
		if err != nil {
			return err
		}
		*email = v
	}
	if *password == "" {
		v, err := promptPassword(stdout)
		if err != nil {
			return err
		}
		*password = v
	}
	minLen := cfg.MinPasswordLength
	if minLen < config.MinPasswordFloor {
		minLen = config.MinPasswordFloor
	}
	if len([]rune(*password)) < minLen {
		return fmt.Errorf("password must have at least %d characters", minLen)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	svc := userapp.NewService(
		pginfra.NewUserRepository(pool),
		pginfra.NewTokenRepository(pool),
		helpers.NewJWTManager(cfg.TokenSecret, cfg.TokenTTL),
		nil,
		logger,
		nil,
		"",
	)
	u, err := svc.CreateSuperuser(ctx, *email, *password)
	if err != nil {
		var verr *userapp.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s: %s", verr.Field, verr.Message)
		}
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Superuser created successfully: %s\n", u.Email)
	return nil
}

func prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprint(w, label); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal; pass -password")
	}
	_, _ = fmt.Fprint(w, "Password: ")
	first, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	_, _ = fmt.Fprint(w, "Password (again): ")
	second, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords didn't match")
	}
	return string(first), nil
}
