package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carpool/internal/carpool/adapter/in/in_amqp"
	"carpool/internal/carpool/adapter/out/geo"
	"carpool/internal/carpool/adapter/out/out_amqp"
	"carpool/internal/carpool/adapter/out/repo"
	"carpool/internal/carpool/application/usecase"
	"carpool/internal/shared/config"
	db_conn "carpool/internal/shared/db"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/mq"
)

// Run starts the coordinator service: the AMQP command consumer plus a
// health endpoint. All mutations flow through here; the dashboard only
// reads and proxies.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "coordinator_starting", Message: "initializing coordinator service"})

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

	// Adapters out.
	userRepo := repo.NewUserPgRepository(dbPool, log)
	officeRepo := repo.NewOfficePgRepository(dbPool, log)
	scheduleRepo := repo.NewSchedulePgRepository(dbPool, log)
	groupRepo := repo.NewGroupPgRepository(dbPool, log)
	memberRepo := repo.NewMembershipPgRepository(dbPool, log)
	geocoder := geo.NewNominatimGeocoder(cfg.Geocoder, log)
	notifier := out_amqp.NewNotifyPublisher(rabbit, log)
	activity := out_amqp.NewActivityPublisher(rabbit, log)

	// Use cases.
	groupNotifier := usecase.NewGroupNotifyService(memberRepo, userRepo, notifier, activity, log)
	useCases := in_amqp.UseCases{
		RegisterHome:     usecase.NewRegisterHomeService(userRepo, geocoder, activity, log),
		AddOffice:        usecase.NewAddOfficeService(officeRepo, geocoder, activity, log),
		SetOffice:        usecase.NewSetOfficeService(userRepo, officeRepo, scheduleRepo, log),
		SetSchedule:      usecase.NewSetScheduleService(officeRepo, scheduleRepo, log),
		DeleteSchedule:   usecase.NewDeleteScheduleService(scheduleRepo, log),
		FindCarpools:     usecase.NewFindCarpoolsService(userRepo, scheduleRepo, groupRepo, officeRepo, memberRepo, log),
		JoinGroup:        usecase.NewJoinGroupService(userRepo, groupRepo, memberRepo, groupNotifier, log),
		SetOrganizer:     usecase.NewSetOrganizerService(userRepo, groupRepo, memberRepo, groupNotifier, log),
		CreateGroup:      usecase.NewCreateGroupService(officeRepo, groupRepo, activity, log),
		SetNotifications: usecase.NewSetNotificationsService(userRepo, log),
		ReportAbsence:    usecase.NewReportAbsenceService(userRepo, memberRepo, groupNotifier, log),
		SendMessage:      usecase.NewSendMessageService(userRepo, memberRepo, groupNotifier, log),
		Announce:         usecase.NewAnnounceService(userRepo, notifier, activity, log),
		Stats:            usecase.NewStatsService(userRepo, groupRepo, memberRepo, log),
		ListGroups:       usecase.NewListGroupsService(groupRepo, officeRepo, memberRepo, userRepo, log),
		ListOffices:      usecase.NewListOfficesService(officeRepo, scheduleRepo, groupRepo, memberRepo, geocoder, log),
	}

	// Adapter in: the command consumer.
	consumer := in_amqp.NewCommandConsumer(rabbit, useCases, notifier, log)
	if err := consumer.Start(ctx); err != nil {
		log.Fatal(logger.Entry{
			Action:  "command_consumer_start_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// Health endpoint for orchestration probes.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"coordinator"}`))
	})

	addr := fmt.Sprintf(":%d", cfg.Services.CoordinatorPort)
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
	log.Info(logger.Entry{Action: "coordinator_stopping", Message: "shutting down coordinator service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "coordinator_stopped", Message: "coordinator service stopped"})
}
