package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carpool/internal/carpool/adapter/out/geo"
	"carpool/internal/carpool/adapter/out/out_amqp"
	"carpool/internal/carpool/adapter/out/out_ws"
	"carpool/internal/carpool/adapter/out/repo"
	"carpool/internal/carpool/application/usecase"
	"carpool/internal/dashboard/adapter/in/in_amqp"
	"carpool/internal/dashboard/adapter/in/transport"
	"carpool/internal/shared/auth"
	"carpool/internal/shared/config"
	db_conn "carpool/internal/shared/db"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/mq"
	"carpool/internal/shared/ws"
)

// Run starts the dashboard service: the REST API, the websocket activity
// feed, and the AMQP bridge that relays coordinator activity into the hub.
// Dashboard-side mutations broadcast into the hub directly; chat-side ones
// arrive over the broker.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "dashboard_starting", Message: "initializing dashboard service"})

	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	if err := db_conn.Migrate(ctx, dbPool); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	rabbit, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer rabbit.Close()

	if err := mq.SetupTopology(ctx, rabbit, log); err != nil {
		log.Fatal(logger.Entry{
			Action:  "topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Websocket hub for the live activity feed.
	hub := ws.NewHub(func(token string) (string, error) {
		userID, _, err := jwtService.ExtractUserID(token)
		return userID, err
	}, log)
	go hub.Run(ctx)

	// Adapters out.
	userRepo := repo.NewUserPgRepository(dbPool, log)
	officeRepo := repo.NewOfficePgRepository(dbPool, log)
	scheduleRepo := repo.NewSchedulePgRepository(dbPool, log)
	groupRepo := repo.NewGroupPgRepository(dbPool, log)
	memberRepo := repo.NewMembershipPgRepository(dbPool, log)
	geocoder := geo.NewNominatimGeocoder(cfg.Geocoder, log)
	notifier := out_amqp.NewNotifyPublisher(rabbit, log)
	activity := out_ws.NewHubBroadcaster(hub, log)

	// Use cases. Member notifications still cross the broker to the chat
	// gateway; only the activity feed short-circuits into the local hub.
	groupNotifier := usecase.NewGroupNotifyService(memberRepo, userRepo, notifier, activity, log)
	deps := transport.HandlerDeps{
		RegisterHome:     usecase.NewRegisterHomeService(userRepo, geocoder, activity, log),
		AddOffice:        usecase.NewAddOfficeService(officeRepo, geocoder, activity, log),
		SetSchedule:      usecase.NewSetScheduleService(officeRepo, scheduleRepo, log),
		DeleteSchedule:   usecase.NewDeleteScheduleService(scheduleRepo, log),
		JoinGroup:        usecase.NewJoinGroupService(userRepo, groupRepo, memberRepo, groupNotifier, log),
		SetOrganizer:     usecase.NewSetOrganizerService(userRepo, groupRepo, memberRepo, groupNotifier, log),
		CreateGroup:      usecase.NewCreateGroupService(officeRepo, groupRepo, activity, log),
		SetNotifications: usecase.NewSetNotificationsService(userRepo, log),
		Stats:            usecase.NewStatsService(userRepo, groupRepo, memberRepo, log),
		ListGroups:       usecase.NewListGroupsService(groupRepo, officeRepo, memberRepo, userRepo, log),
		ListOffices:      usecase.NewListOfficesService(officeRepo, scheduleRepo, groupRepo, memberRepo, geocoder, log),
	}

	// Bridge coordinator activity into the hub.
	activityConsumer := in_amqp.NewActivityConsumer(rabbit, hub, log)
	if err := activityConsumer.Start(ctx); err != nil {
		log.Fatal(logger.Entry{
			Action:  "activity_consumer_start_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// HTTP server.
	httpHandler := transport.NewHTTPHandler(deps, jwtService, cfg.Dashboard, log)
	mux := http.NewServeMux()
	authMW := transport.AuthMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, authMW)
	mux.HandleFunc("GET /ws", hub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.DashboardPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "dashboard_stopping", Message: "shutting down dashboard service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "dashboard_stopped", Message: "dashboard service stopped"})
}
