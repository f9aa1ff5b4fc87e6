// cmd/tools/createuser/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtPlay/internal/api/auth"
	"github.com/codr1/CourtPlay/internal/config"
	"github.com/codr1/CourtPlay/internal/db"
	dbgen "github.com/codr1/CourtPlay/internal/db/generated"
	"github.com/codr1/CourtPlay/internal/models"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		configPath = flag.String("config", "config/app.yaml", "Path to the YAML configuration file")
		email      = flag.String("email", "", "Login email")
		name       = flag.String("name", "", "Display name")
		role       = flag.String("role", string(models.RoleUser), "USER, MANAGER or ADMIN")
		password   = flag.String("password", "", "Password; read from stdin when empty")
	)
	flag.Parse()

	userEmail := strings.ToLower(strings.TrimSpace(*email))
	userName := strings.TrimSpace(*name)
	if userEmail == "" || userName == "" {
		fmt.Fprintln(os.Stderr, "-email and -name are required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	userRole, err := models.ParseRole(*role)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid role")
	}

	secret := *password
	if secret == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatal().Err(err).Msg("Failed to read password")
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if err := auth.ValidateNewPassword(secret); err != nil {
		log.Fatal().Err(err).Msg("Password rejected")
	}
	hash, err := auth.HashPassword(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", *configPath).Msg("Failed to load configuration")
	}
	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := database.Queries.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        userEmail,
		Name:         userName,
		Role:         userRole.String(),
		PasswordHash: hash,
		CreatedAt:    db.FormatTimestamp(time.Now()),
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", userEmail).Msg("Failed to create user")
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Str("role", user.Role).
		Msg("User created")
}
