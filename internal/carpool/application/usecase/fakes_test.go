package usecase

import (
	"context"
	"sort"
	"sync"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/carpool/domain"
)

// In-memory fakes for every ports/out interface. All of them preserve
// insertion order so list results are stable like the SQL adapters.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{} }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users = append(r.users, &u)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotRegistered
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	return domain.ErrNotRegistered
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outUsers := make([]*domain.User, len(r.users))
	for i, u := range r.users {
		cp := *u
		outUsers[i] = &cp
	}
	return outUsers, nil
}

type fakeOfficeRepo struct {
	mu      sync.Mutex
	offices []*domain.OfficeLocation
}

func newFakeOfficeRepo() *fakeOfficeRepo { return &fakeOfficeRepo{} }

func (r *fakeOfficeRepo) Create(_ context.Context, office *domain.OfficeLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offices {
		if o.Name == office.Name {
			return domain.ErrDuplicateOffice
		}
	}
	cp := *office
	r.offices = append(r.offices, &cp)
	return nil
}

func (r *fakeOfficeRepo) FindByID(_ context.Context, officeID string) (*domain.OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offices {
		if o.ID == officeID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOfficeNotFound
}

func (r *fakeOfficeRepo) FindByName(_ context.Context, name string) (*domain.OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offices {
		if o.Name == name {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOfficeNotFound
}

func (r *fakeOfficeRepo) FindAll(_ context.Context) ([]*domain.OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outOffices := make([]*domain.OfficeLocation, len(r.offices))
	for i, o := range r.offices {
		cp := *o
		outOffices[i] = &cp
	}
	return outOffices, nil
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules []*domain.WorkSchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo { return &fakeScheduleRepo{} }

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *domain.WorkSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *schedule
	r.schedules = append(r.schedules, &cp)
	return nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, schedule *domain.WorkSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.schedules {
		if s.ID == schedule.ID {
			cp := *schedule
			r.schedules[i] = &cp
			return nil
		}
	}
	return domain.ErrScheduleNotFound
}

func (r *fakeScheduleRepo) FindByUserID(_ context.Context, userID string) ([]*domain.WorkSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.WorkSchedule
	for _, s := range r.schedules {
		if s.UserID == userID {
			cp := *s
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeScheduleRepo) FindOneByUserID(_ context.Context, userID string) (*domain.WorkSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schedules {
		if s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrScheduleNotFound
}

func (r *fakeScheduleRepo) FindByOfficeID(_ context.Context, officeID string) ([]*domain.WorkSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.WorkSchedule
	for _, s := range r.schedules {
		if s.OfficeID == officeID {
			cp := *s
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeScheduleRepo) DeleteByIDAndUser(_ context.Context, scheduleID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.schedules {
		if s.ID == scheduleID && s.UserID == userID {
			r.schedules = append(r.schedules[:i], r.schedules[i+1:]...)
			return nil
		}
	}
	return domain.ErrScheduleNotFound
}

type fakeGroupRepo struct {
	mu     sync.Mutex
	groups []*domain.CarpoolGroup
}

func newFakeGroupRepo() *fakeGroupRepo { return &fakeGroupRepo{} }

func (r *fakeGroupRepo) Create(_ context.Context, group *domain.CarpoolGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *group
	r.groups = append(r.groups, &cp)
	return nil
}

func (r *fakeGroupRepo) FindByID(_ context.Context, groupID string) (*domain.CarpoolGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.ID == groupID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *fakeGroupRepo) FindByName(_ context.Context, name string) (*domain.CarpoolGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Oldest first: insertion order already is creation order.
	for _, g := range r.groups {
		if g.Name == name {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *fakeGroupRepo) FindByOfficeIDs(_ context.Context, officeIDs []string) ([]*domain.CarpoolGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(officeIDs))
	for _, id := range officeIDs {
		wanted[id] = true
	}
	var res []*domain.CarpoolGroup
	for _, g := range r.groups {
		if wanted[g.OfficeID] {
			cp := *g
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeGroupRepo) FindAll(_ context.Context) ([]*domain.CarpoolGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.CarpoolGroup, len(r.groups))
	for i, g := range r.groups {
		cp := *g
		res[i] = &cp
	}
	return res, nil
}

func (r *fakeGroupRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.groups), nil
}

type fakeMembershipRepo struct {
	mu          sync.Mutex
	memberships []*domain.Membership
}

func newFakeMembershipRepo() *fakeMembershipRepo { return &fakeMembershipRepo{} }

// CreateIfCapacity holds the lock across the count and the insert, mirroring
// the transactional adapter: capacity first, uniqueness second.
func (r *fakeMembershipRepo) CreateIfCapacity(_ context.Context, membership *domain.Membership, maxSize int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.memberships {
		if m.GroupID == membership.GroupID {
			count++
		}
	}
	if count >= maxSize {
		return domain.ErrGroupFull
	}
	for _, m := range r.memberships {
		if m.GroupID == membership.GroupID && m.UserID == membership.UserID {
			return domain.ErrAlreadyMember
		}
	}
	cp := *membership
	r.memberships = append(r.memberships, &cp)
	return nil
}

func (r *fakeMembershipRepo) FindByUserAndGroup(_ context.Context, userID, groupID string) (*domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.memberships {
		if m.UserID == userID && m.GroupID == groupID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrNotAMember
}

func (r *fakeMembershipRepo) FindByGroupID(_ context.Context, groupID string) ([]*domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.Membership
	for _, m := range r.memberships {
		if m.GroupID == groupID {
			cp := *m
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeMembershipRepo) FindByUserID(_ context.Context, userID string) ([]*domain.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.Membership
	for _, m := range r.memberships {
		if m.UserID == userID {
			cp := *m
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeMembershipRepo) SetOrganizer(_ context.Context, membershipID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.memberships {
		if m.ID == membershipID {
			m.IsOrganizer = true
			return nil
		}
	}
	return domain.ErrNotAMember
}

func (r *fakeMembershipRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.memberships), nil
}

// fakeGeocoder resolves addresses from a fixed table; unknown addresses are
// a no-match, err (if set) simulates an outage.
type fakeGeocoder struct {
	coords map[string]domain.Coordinate
	err    error
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{coords: make(map[string]domain.Coordinate)}
}

func (g *fakeGeocoder) set(address string, lat, lng float64) {
	g.coords[address] = domain.Coordinate{Latitude: lat, Longitude: lng}
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) ([]domain.Coordinate, error) {
	if g.err != nil {
		return nil, g.err
	}
	if c, ok := g.coords[address]; ok {
		return []domain.Coordinate{c}, nil
	}
	return nil, nil
}

type sentNotification struct {
	UserID string
	N      out.Notification
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentNotification
	failFor map[string]error // userID -> error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]error)}
}

func (n *fakeNotifier) Send(_ context.Context, userExternalID string, notif out.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.failFor[userExternalID]; ok {
		return err
	}
	n.sent = append(n.sent, sentNotification{UserID: userExternalID, N: notif})
	return nil
}

func (n *fakeNotifier) sentTo() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]string, 0, len(n.sent))
	for _, s := range n.sent {
		ids = append(ids, s.UserID)
	}
	sort.Strings(ids)
	return ids
}

type fakeActivity struct {
	mu     sync.Mutex
	events []out.ActivityEvent
	err    error
}

func newFakeActivity() *fakeActivity { return &fakeActivity{} }

func (a *fakeActivity) Broadcast(_ context.Context, event out.ActivityEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, event)
	return nil
}

// recordingGroupNotifier captures fanout calls without delivering anything.
type recordingGroupNotifier struct {
	mu    sync.Mutex
	calls []out.Notification
}

func (n *recordingGroupNotifier) NotifyGroup(_ context.Context, groupID string, notif out.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notif.GroupID = groupID
	n.calls = append(n.calls, notif)
}
