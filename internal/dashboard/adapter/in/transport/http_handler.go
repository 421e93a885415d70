package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"carpool/internal/carpool/application/ports/in"
	"carpool/internal/carpool/domain"
	"carpool/internal/shared/auth"
	"carpool/internal/shared/config"
	"carpool/internal/shared/logger"

	"golang.org/x/crypto/bcrypt"
)

const maxBodySize = 1 << 20 // 1MB

// HTTPHandler serves the dashboard REST API over the engine use cases.
type HTTPHandler struct {
	registerHomeUC     in.RegisterHomeUseCase
	addOfficeUC        in.AddOfficeUseCase
	setScheduleUC      in.SetScheduleUseCase
	deleteScheduleUC   in.DeleteScheduleUseCase
	joinGroupUC        in.JoinGroupUseCase
	setOrganizerUC     in.SetOrganizerUseCase
	createGroupUC      in.CreateGroupUseCase
	setNotificationsUC in.SetNotificationsUseCase
	statsUC            in.StatsUseCase
	listGroupsUC       in.ListGroupsUseCase
	listOfficesUC      in.ListOfficesUseCase

	jwtService *auth.JWTService
	dashCfg    config.DashboardConfig
	log        *logger.Logger
}

// HandlerDeps bundles the handler's use case dependencies.
type HandlerDeps struct {
	RegisterHome     in.RegisterHomeUseCase
	AddOffice        in.AddOfficeUseCase
	SetSchedule      in.SetScheduleUseCase
	DeleteSchedule   in.DeleteScheduleUseCase
	JoinGroup        in.JoinGroupUseCase
	SetOrganizer     in.SetOrganizerUseCase
	CreateGroup      in.CreateGroupUseCase
	SetNotifications in.SetNotificationsUseCase
	Stats            in.StatsUseCase
	ListGroups       in.ListGroupsUseCase
	ListOffices      in.ListOfficesUseCase
}

func NewHTTPHandler(deps HandlerDeps, jwtService *auth.JWTService, dashCfg config.DashboardConfig, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		registerHomeUC:     deps.RegisterHome,
		addOfficeUC:        deps.AddOffice,
		setScheduleUC:      deps.SetSchedule,
		deleteScheduleUC:   deps.DeleteSchedule,
		joinGroupUC:        deps.JoinGroup,
		setOrganizerUC:     deps.SetOrganizer,
		createGroupUC:      deps.CreateGroup,
		setNotificationsUC: deps.SetNotifications,
		statsUC:            deps.Stats,
		listGroupsUC:       deps.ListGroups,
		listOfficesUC:      deps.ListOffices,
		jwtService:         jwtService,
		dashCfg:            dashCfg,
		log:                log,
	}
}

// RegisterRoutes wires all dashboard routes onto the mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux, authMW func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("POST /api/v1/login", h.handleLogin)

	mux.HandleFunc("GET /api/v1/offices", authMW(h.handleListOffices))
	mux.HandleFunc("GET /api/v1/groups", authMW(h.handleListGroups))
	mux.HandleFunc("GET /api/v1/stats", authMW(h.handleStats))
	mux.HandleFunc("POST /api/v1/home", authMW(h.handleRegisterHome))
	mux.HandleFunc("POST /api/v1/offices", authMW(h.handleAddOffice))
	mux.HandleFunc("POST /api/v1/groups", authMW(h.handleCreateGroup))
	mux.HandleFunc("POST /api/v1/groups/join", authMW(h.handleJoinGroup))
	mux.HandleFunc("POST /api/v1/groups/organizer", authMW(h.handleSetOrganizer))
	mux.HandleFunc("POST /api/v1/schedules", authMW(h.handleSetSchedule))
	mux.HandleFunc("DELETE /api/v1/schedules/{id}", authMW(h.handleDeleteSchedule))
	mux.HandleFunc("PUT /api/v1/notifications", authMW(h.handleSetNotifications))
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"dashboard"}`))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HTTPHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.Email != h.dashCfg.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(h.dashCfg.AdminPasswordHash), []byte(req.Password)) != nil {
		h.log.Warn(logger.Entry{
			Action:  "login_rejected",
			Message: "bad credentials",
		})
		h.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(req.Email, req.Email, "ADMIN")
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "token_generation_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *HTTPHandler) handleListOffices(w http.ResponseWriter, r *http.Request) {
	res, err := h.listOfficesUC.Execute(r.Context(), in.ListOfficesInput{
		ReferenceAddress: r.URL.Query().Get("address"),
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, res)
}

func (h *HTTPHandler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	res, err := h.listGroupsUC.Execute(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, res)
}

func (h *HTTPHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.statsUC.Execute(r.Context())
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, res)
}

type registerHomeRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Address     string `json:"address"`
}

func (h *HTTPHandler) handleRegisterHome(w http.ResponseWriter, r *http.Request) {
	var req registerHomeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Address == "" {
		h.respondError(w, http.StatusBadRequest, "user_id and address are required")
		return
	}

	res, err := h.registerHomeUC.Execute(r.Context(), in.RegisterHomeInput{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Address:     req.Address,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	h.respondJSON(w, status, res)
}

type addOfficeRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (h *HTTPHandler) handleAddOffice(w http.ResponseWriter, r *http.Request) {
	var req addOfficeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Address == "" {
		h.respondError(w, http.StatusBadRequest, "name and address are required")
		return
	}

	res, err := h.addOfficeUC.Execute(r.Context(), in.AddOfficeInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, res)
}

type createGroupRequest struct {
	Name       string `json:"name"`
	OfficeName string `json:"office_name"`
	MaxSize    int    `json:"max_size"`
}

func (h *HTTPHandler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.OfficeName == "" {
		h.respondError(w, http.StatusBadRequest, "name and office_name are required")
		return
	}

	res, err := h.createGroupUC.Execute(r.Context(), in.CreateGroupInput{
		Name:       req.Name,
		OfficeName: req.OfficeName,
		MaxSize:    req.MaxSize,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, res)
}

type joinGroupRequest struct {
	UserID    string `json:"user_id"`
	GroupName string `json:"group_name"`
}

func (h *HTTPHandler) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.GroupName == "" {
		h.respondError(w, http.StatusBadRequest, "user_id and group_name are required")
		return
	}

	res, err := h.joinGroupUC.Execute(r.Context(), in.JoinGroupInput{
		UserID:    req.UserID,
		GroupName: req.GroupName,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, res)
}

func (h *HTTPHandler) handleSetOrganizer(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.GroupName == "" {
		h.respondError(w, http.StatusBadRequest, "user_id and group_name are required")
		return
	}

	res, err := h.setOrganizerUC.Execute(r.Context(), in.SetOrganizerInput{
		UserID:    req.UserID,
		GroupName: req.GroupName,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, res)
}

type setScheduleRequest struct {
	UserID     string `json:"user_id"`
	OfficeName string `json:"office_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	DaysOfWeek string `json:"days_of_week"`
}

func (h *HTTPHandler) handleSetSchedule(w http.ResponseWriter, r *http.Request) {
	var req setScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.OfficeName == "" {
		h.respondError(w, http.StatusBadRequest, "user_id and office_name are required")
		return
	}

	res, err := h.setScheduleUC.Execute(r.Context(), in.SetScheduleInput{
		UserID:     req.UserID,
		OfficeName: req.OfficeName,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		DaysOfWeek: req.DaysOfWeek,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, res)
}

func (h *HTTPHandler) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("id")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.deleteScheduleUC.Execute(r.Context(), in.DeleteScheduleInput{
		UserID:     userID,
		ScheduleID: scheduleID,
	}); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setNotificationsRequest struct {
	UserID  string `json:"user_id"`
	Enabled bool   `json:"enabled"`
}

func (h *HTTPHandler) handleSetNotifications(w http.ResponseWriter, r *http.Request) {
	var req setNotificationsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.setNotificationsUC.Execute(r.Context(), in.SetNotificationsInput{
		UserID:  req.UserID,
		Enabled: req.Enabled,
	}); err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "empty request body")
			return false
		}
		h.log.Error(logger.Entry{
			Action:  "parse_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusBadRequest, "invalid request format")
		return false
	}
	return true
}

// respondDomainError maps domain sentinels to HTTP status codes. Unmapped
// errors log and return a generic 500.
func (h *HTTPHandler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, domain.ErrOfficeNotFound),
		errors.Is(err, domain.ErrGroupNotFound),
		errors.Is(err, domain.ErrScheduleNotFound),
		errors.Is(err, domain.ErrNotAMember),
		errors.Is(err, domain.ErrNotInAnyGroup):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrGroupFull),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrDuplicateOffice):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAddressNotFound),
		errors.Is(err, domain.ErrNoSchedule),
		errors.Is(err, domain.ErrInvalidTimeFormat),
		errors.Is(err, domain.ErrInvalidDays),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrInvalidCoordinates):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLookupUnavailable):
		h.respondError(w, http.StatusBadGateway, "address lookup unavailable")
	default:
		h.log.Error(logger.Entry{
			Action:  "request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error(logger.Entry{
			Action:  "encode_response_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}
