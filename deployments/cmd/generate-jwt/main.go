package main

import (
	"flag"
	"fmt"
	"os"

	"carpool/internal/shared/auth"
	"carpool/internal/shared/config"
)

func main() {
	userID := flag.String("user", "admin@example.com", "User ID")
	email := flag.String("email", "admin@example.com", "Email address")
	role := flag.String("role", "ADMIN", "Role")
	flag.Parse()

	cfg := config.Load()
	jwtService := auth.NewJWTService(cfg.JWT)

	token, err := jwtService.GenerateToken(*userID, *email, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
