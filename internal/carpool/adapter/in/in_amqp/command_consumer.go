package in_amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/mq"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// commandEnvelope is the wire format the chat gateway publishes for every
// user command.
type commandEnvelope struct {
	Command     string            `json:"command"`
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Args        map[string]string `json:"args"`
}

type commandHandler func(ctx context.Context, env commandEnvelope) (string, error)

// CommandConsumer listens on the command queue and dispatches each envelope
// to a use case. The dispatch table is built once at construction; handlers
// never grow branching inside the consume loop.
type CommandConsumer struct {
	mq       *mq.RabbitMQ
	notifier out.Notifier
	handlers map[string]commandHandler
	log      *logger.Logger
}

// UseCases bundles everything the consumer dispatches to.
type UseCases struct {
	RegisterHome     in.RegisterHomeUseCase
	AddOffice        in.AddOfficeUseCase
	SetOffice        in.SetOfficeUseCase
	SetSchedule      in.SetScheduleUseCase
	DeleteSchedule   in.DeleteScheduleUseCase
	FindCarpools     in.FindCarpoolsUseCase
	JoinGroup        in.JoinGroupUseCase
	SetOrganizer     in.SetOrganizerUseCase
	CreateGroup      in.CreateGroupUseCase
	SetNotifications in.SetNotificationsUseCase
	ReportAbsence    in.ReportAbsenceUseCase
	SendMessage      in.SendMessageUseCase
	Announce         in.AnnounceUseCase
	Stats            in.StatsUseCase
	ListGroups       in.ListGroupsUseCase
	ListOffices      in.ListOfficesUseCase
}

func NewCommandConsumer(rabbit *mq.RabbitMQ, uc UseCases, notifier out.Notifier, log *logger.Logger) *CommandConsumer {
	c := &CommandConsumer{
		mq:       rabbit,
		notifier: notifier,
		log:      log,
	}
	c.handlers = map[string]commandHandler{
		"set_home":        c.handleSetHome(uc.RegisterHome),
		"add_office":      c.handleAddOffice(uc.AddOffice),
		"set_office":      c.handleSetOffice(uc.SetOffice),
		"set_schedule":    c.handleSetSchedule(uc.SetSchedule),
		"delete_schedule": c.handleDeleteSchedule(uc.DeleteSchedule),
		"find":            c.handleFind(uc.FindCarpools),
		"join":            c.handleJoin(uc.JoinGroup),
		"set_organizer":   c.handleSetOrganizer(uc.SetOrganizer),
		"create":          c.handleCreate(uc.CreateGroup),
		"notify":          c.handleNotify(uc.SetNotifications),
		"out":             c.handleOut(uc.ReportAbsence),
		"message":         c.handleMessage(uc.SendMessage),
		"announce":        c.handleAnnounce(uc.Announce),
		"stats":           c.handleStats(uc.Stats),
		"list":            c.handleList(uc.ListGroups),
		"find_offices":    c.handleFindOffices(uc.ListOffices),
	}
	return c
}

// Start begins consuming the command queue.
func (c *CommandConsumer) Start(ctx context.Context) error {
	c.log.Info(logger.Entry{
		Action:  "command_consumer_starting",
		Message: "starting carpool command consumer",
	})
	return c.mq.Consume(ctx, mq.CommandQueue, "coordinator-service", func(msg amqp091.Delivery) {
		c.handleDelivery(ctx, msg)
	})
}

func (c *CommandConsumer) handleDelivery(ctx context.Context, msg amqp091.Delivery) {
	var env commandEnvelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		c.log.Error(logger.Entry{
			Action:  "command_unmarshal_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		_ = msg.Nack(false, false)
		return
	}

	handler, ok := c.handlers[env.Command]
	if !ok {
		// Unknown commands are acked, not requeued: redelivery cannot fix
		// a command this build does not know.
		c.log.Warn(logger.Entry{
			Action:  "command_unknown",
			Message: env.Command,
			Additional: map[string]any{
				"user_id": env.UserID,
			},
		})
		_ = msg.Ack(false)
		return
	}

	reply, err := handler(ctx, env)
	if err != nil {
		reply = userFacingError(err)
		c.log.Warn(logger.Entry{
			Action:  "command_rejected",
			Message: err.Error(),
			Additional: map[string]any{
				"command": env.Command,
				"user_id": env.UserID,
			},
		})
	} else {
		c.log.Info(logger.Entry{
			Action:  "command_handled",
			Message: env.Command,
			Additional: map[string]any{
				"user_id": env.UserID,
			},
		})
	}

	c.reply(ctx, env.UserID, reply)
	_ = msg.Ack(false)
}

// reply sends the command outcome back to the issuing user. Best-effort.
func (c *CommandConsumer) reply(ctx context.Context, userID, text string) {
	if text == "" {
		return
	}
	if err := c.notifier.Send(ctx, userID, out.Notification{Kind: "reply", Text: text}); err != nil {
		c.log.Error(logger.Entry{
			Action:  "command_reply_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"user_id": userID,
			},
		})
	}
}

// userFacingError maps domain sentinels to chat-friendly text. Anything
// unmapped gets a generic line; internals never leak to the gateway.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotRegistered):
		return "You are not registered yet. Set your home address first."
	case errors.Is(err, domain.ErrNoSchedule):
		return "You have no work schedule. Set your office first."
	case errors.Is(err, domain.ErrAddressNotFound):
		return "That address could not be found."
	case errors.Is(err, domain.ErrLookupUnavailable):
		return "Address lookup is unavailable right now, try again later."
	case errors.Is(err, domain.ErrOfficeNotFound):
		return "No office by that name."
	case errors.Is(err, domain.ErrDuplicateOffice):
		return "An office with that name already exists."
	case errors.Is(err, domain.ErrGroupNotFound):
		return "No carpool group by that name."
	case errors.Is(err, domain.ErrGroupFull):
		return "That carpool group is full."
	case errors.Is(err, domain.ErrAlreadyMember):
		return "You are already in that group."
	case errors.Is(err, domain.ErrNotAMember):
		return "You are not a member of that group."
	case errors.Is(err, domain.ErrNotInAnyGroup):
		return "You are not in any carpool group."
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		return "Times must look like 09:00."
	case errors.Is(err, domain.ErrInvalidDays):
		return "Days must be a comma-separated list of 1-7."
	case errors.Is(err, domain.ErrInvalidCapacity):
		return "Group size must be at least 1."
	case errors.Is(err, domain.ErrScheduleNotFound):
		return "No such schedule."
	default:
		return "Something went wrong, try again later."
	}
}

func (c *CommandConsumer) handleSetHome(uc in.RegisterHomeUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.RegisterHomeInput{
			UserID:      env.UserID,
			DisplayName: env.DisplayName,
			Address:     env.Args["address"],
		})
		if err != nil {
			return "", err
		}
		if res.Created {
			return fmt.Sprintf("Welcome aboard! Home set to %s.", res.Address), nil
		}
		return fmt.Sprintf("Home updated to %s.", res.Address), nil
	}
}

func (c *CommandConsumer) handleAddOffice(uc in.AddOfficeUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.AddOfficeInput{
			Name:    env.Args["name"],
			Address: env.Args["address"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Office %s added at %s.", res.Office.Name, res.Office.Address), nil
	}
}

func (c *CommandConsumer) handleSetOffice(uc in.SetOfficeUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.SetOfficeInput{
			UserID:     env.UserID,
			OfficeName: env.Args["office"],
		})
		if err != nil {
			return "", err
		}
		if res.Created {
			return fmt.Sprintf("Office set. Default schedule %s-%s created.", res.Schedule.StartTime, res.Schedule.EndTime), nil
		}
		return "Office updated on your schedule.", nil
	}
}

func (c *CommandConsumer) handleSetSchedule(uc in.SetScheduleUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.SetScheduleInput{
			UserID:     env.UserID,
			OfficeName: env.Args["office"],
			StartTime:  env.Args["start"],
			EndTime:    env.Args["end"],
			DaysOfWeek: env.Args["days"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Schedule saved: %s-%s on days %s.", res.Schedule.StartTime, res.Schedule.EndTime, res.Schedule.DaysOfWeek), nil
	}
}

func (c *CommandConsumer) handleDeleteSchedule(uc in.DeleteScheduleUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		if err := uc.Execute(ctx, in.DeleteScheduleInput{
			UserID:     env.UserID,
			ScheduleID: env.Args["schedule_id"],
		}); err != nil {
			return "", err
		}
		return "Schedule deleted.", nil
	}
}

func (c *CommandConsumer) handleFind(uc in.FindCarpoolsUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.FindCarpoolsInput{UserID: env.UserID})
		if err != nil {
			return "", err
		}
		if len(res.Groups) == 0 {
			return "No carpool groups at your offices yet.", nil
		}
		text := fmt.Sprintf("Found %d carpool group(s):", len(res.Groups))
		for _, g := range res.Groups {
			text += fmt.Sprintf("\n- %s at %s: %d/%d seats taken, %d free",
				g.Group.Group.Name,
				g.Group.Office.Name,
				len(g.Group.Members),
				g.Group.Group.MaxSize,
				g.RemainingCapacity,
			)
		}
		return text, nil
	}
}

func (c *CommandConsumer) handleJoin(uc in.JoinGroupUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.JoinGroupInput{
			UserID:    env.UserID,
			GroupName: env.Args["group"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("You joined %s.", res.Group.Name), nil
	}
}

func (c *CommandConsumer) handleSetOrganizer(uc in.SetOrganizerUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		if _, err := uc.Execute(ctx, in.SetOrganizerInput{
			UserID:    env.UserID,
			GroupName: env.Args["group"],
		}); err != nil {
			return "", err
		}
		return fmt.Sprintf("You are now an organizer of %s.", env.Args["group"]), nil
	}
}

func (c *CommandConsumer) handleCreate(uc in.CreateGroupUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		maxSize, err := strconv.Atoi(env.Args["max_size"])
		if err != nil {
			return "", domain.ErrInvalidCapacity
		}
		res, err := uc.Execute(ctx, in.CreateGroupInput{
			Name:       env.Args["name"],
			OfficeName: env.Args["office"],
			MaxSize:    maxSize,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Group %s created with %d seats.", res.Group.Name, res.Group.MaxSize), nil
	}
}

func (c *CommandConsumer) handleNotify(uc in.SetNotificationsUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		enabled := env.Args["enabled"] == "true" || env.Args["enabled"] == "on"
		if err := uc.Execute(ctx, in.SetNotificationsInput{
			UserID:  env.UserID,
			Enabled: enabled,
		}); err != nil {
			return "", err
		}
		if enabled {
			return "Notifications on.", nil
		}
		return "Notifications off.", nil
	}
}

func (c *CommandConsumer) handleOut(uc in.ReportAbsenceUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.ReportAbsenceInput{
			UserID: env.UserID,
			Date:   env.Args["date"],
			Reason: env.Args["reason"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Got it, told %d group(s).", res.GroupsNotified), nil
	}
}

func (c *CommandConsumer) handleMessage(uc in.SendMessageUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.SendMessageInput{
			UserID: env.UserID,
			Text:   env.Args["text"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Message relayed to %d group(s).", res.GroupsNotified), nil
	}
}

func (c *CommandConsumer) handleAnnounce(uc in.AnnounceUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.AnnounceInput{Text: env.Args["text"]})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Announcement delivered to %d user(s).", res.UsersNotified), nil
	}
}

func (c *CommandConsumer) handleStats(uc in.StatsUseCase) commandHandler {
	return func(ctx context.Context, _ commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Users: %d, carpools: %d, memberships: %d.",
			res.TotalUsers, res.TotalCarpools, res.TotalMembers), nil
	}
}

func (c *CommandConsumer) handleList(uc in.ListGroupsUseCase) commandHandler {
	return func(ctx context.Context, _ commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx)
		if err != nil {
			return "", err
		}
		if len(res.Groups) == 0 {
			return "No carpool groups yet.", nil
		}
		text := "Carpool groups:"
		for _, g := range res.Groups {
			text += fmt.Sprintf("\n- %s at %s (%d/%d)",
				g.Group.Name, g.Office.Name, len(g.Members), g.Group.MaxSize)
		}
		return text, nil
	}
}

func (c *CommandConsumer) handleFindOffices(uc in.ListOfficesUseCase) commandHandler {
	return func(ctx context.Context, env commandEnvelope) (string, error) {
		res, err := uc.Execute(ctx, in.ListOfficesInput{
			ReferenceAddress: env.Args["address"],
		})
		if err != nil {
			return "", err
		}
		if len(res.Offices) == 0 {
			return "No offices registered yet.", nil
		}
		text := "Offices:"
		for _, o := range res.Offices {
			line := fmt.Sprintf("\n- %s (%s): %d commuters, %d carpooling (%.0f%%)",
				o.Office.Name, o.Office.Address, o.TotalUsers, o.UsersInCarpools, o.ParticipationRate)
			if o.DistanceKm != nil {
				line += fmt.Sprintf(", %.1f km away", *o.DistanceKm)
			}
			text += line
		}
		return text, nil
	}
}
