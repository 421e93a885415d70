package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"carpool/internal/shared/config"
	"carpool/internal/shared/logger"

	carpoolboot "carpool/internal/carpool/bootstrap"
	dashboot "carpool/internal/dashboard/bootstrap"
)

func main() {
	svc := flag.String("service", "carpool", "carpool|dashboard|all")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "carpool":
		log := logger.NewLogger("coordinator-service")
		carpoolboot.Run(ctx, cfg, log)

	case "dashboard":
		log := logger.NewLogger("dashboard-service")
		dashboot.Run(ctx, cfg, log)

	case "all":
		carpoolLog := logger.NewLogger("coordinator-service")
		dashLog := logger.NewLogger("dashboard-service")

		go carpoolboot.Run(ctx, cfg, carpoolLog)
		go dashboot.Run(ctx, cfg, dashLog)

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}

	<-ctx.Done()
}
