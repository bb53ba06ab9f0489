package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores en memoria con la misma semántica que los repos de Mongo:
// FindByID devuelve nil, nil si no existe y Update es condicionado por versión.

type fakeUsers struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[primitive.ObjectID]models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) find(match func(models.User) bool) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if match(u) {
			cp := u
			return &cp
		}
	}
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Email == email }), nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Username == username }), nil
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id }), nil
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.byID {
		if other.Email == u.Email || other.Username == u.Username {
			return repository.ErrDuplicateKey
		}
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) UpdateByID(_ context.Context, id primitive.ObjectID, update map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for k, v := range update {
		switch k {
		case "userType":
			u.UserType = v.(string)
		case "languageLevel":
			u.LanguageLevel = v.(string)
		case "email":
			u.Email = v.(string)
		case "username":
			u.Username = v.(string)
		case "passwordHash":
			u.PasswordHash = v.(string)
		case "profileImage":
			u.ProfileImage = v.(string)
		case "updatedAt":
			u.UpdatedAt = v.(time.Time)
		}
	}
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) RaiseProgress(_ context.Context, id primitive.ObjectID, skill string, score float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil
	}
	progress := map[string]float64{}
	for k, v := range u.Progress {
		progress[k] = v
	}
	if score > progress[skill] {
		progress[skill] = score
	}
	u.Progress = progress
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) Search(_ context.Context, userType, q string, _, _ int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.byID {
		if userType != "" && u.UserType != userType {
			continue
		}
		if q != "" && !strings.Contains(u.Username, q) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type fakeExams struct {
	byID map[primitive.ObjectID]models.Exam
}

func newFakeExams(exams ...models.Exam) *fakeExams {
	f := &fakeExams{byID: map[primitive.ObjectID]models.Exam{}}
	for _, e := range exams {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeExams) FindByID(_ context.Context, id primitive.ObjectID) (*models.Exam, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeExams) List(_ context.Context, level string, _, _ int) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range f.byID {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExams) Insert(_ context.Context, e *models.Exam) error {
	f.byID[e.ID] = *e
	return nil
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

func (f *fakeHistory) Insert(_ context.Context, h *models.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *h)
	return nil
}

func (f *fakeHistory) FindByUser(_ context.Context, userID primitive.ObjectID, testModelName string, _, _ int) ([]models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.HistoryEntry
	for _, h := range f.entries {
		if h.UserID == userID && (testModelName == "" || h.TestModelName == testModelName) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHistory) AllByUser(ctx context.Context, userID primitive.ObjectID) ([]models.HistoryEntry, error) {
	return f.FindByUser(ctx, userID, "", 0, 0)
}

type fakeBookings struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Booking
	// conflicts > 0 simula otro writer: el próximo Update falla y la versión guardada avanza
	conflicts int
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: map[primitive.ObjectID]models.Booking{}}
}

// Insert rechaza solapamientos bajo el mismo lock, igual que el índice único
// de slots del repositorio Mongo.
func (f *fakeBookings) Insert(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.byID {
		if other.TrainerID == b.TrainerID && other.Status != models.BookingStatusCompleted &&
			other.ScheduledAt.Before(b.EndsAt) && other.EndsAt.After(b.ScheduledAt) {
			return repository.ErrDuplicateKey
		}
	}
	f.byID[b.ID] = *b
	return nil
}

func (f *fakeBookings) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBookings) Update(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[b.ID]
	if !ok {
		return repository.ErrVersionConflict
	}
	if f.conflicts > 0 {
		f.conflicts--
		stored.Version++
		f.byID[b.ID] = stored
		return repository.ErrVersionConflict
	}
	if stored.Version != b.Version {
		return repository.ErrVersionConflict
	}
	b.Version++
	f.byID[b.ID] = *b
	return nil
}

func (f *fakeBookings) FindByUser(_ context.Context, userID primitive.ObjectID, status string, _, _ int) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.byID {
		if b.IsParticipant(userID) && (status == "" || b.Status == status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) TrainerBusy(_ context.Context, trainerID primitive.ObjectID, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.byID {
		if b.TrainerID == trainerID && b.Status != models.BookingStatusCompleted &&
			b.ScheduledAt.Before(to) && b.EndsAt.After(from) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookings) FindConfirmedEndedBefore(_ context.Context, t time.Time, _ int64) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.byID {
		if b.Status == models.BookingStatusConfirmed && !b.EndsAt.After(t) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) CountByStatus(context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int64{}
	for _, b := range f.byID {
		out[b.Status]++
	}
	return out, nil
}

type fakeMatches struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Match
}

func newFakeMatches() *fakeMatches {
	return &fakeMatches{byID: map[primitive.ObjectID]models.Match{}}
}

func cloneMatch(m models.Match) models.Match {
	m.Answers = append([]models.MatchAnswer(nil), m.Answers...)
	return m
}

func (f *fakeMatches) Insert(_ context.Context, m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[m.ID] = cloneMatch(*m)
	return nil
}

func (f *fakeMatches) FindByID(_ context.Context, id primitive.ObjectID) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := cloneMatch(m)
	return &cp, nil
}

func (f *fakeMatches) Update(_ context.Context, m *models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[m.ID]
	if !ok || stored.Version != m.Version {
		return repository.ErrVersionConflict
	}
	m.Version++
	f.byID[m.ID] = cloneMatch(*m)
	return nil
}

func (f *fakeMatches) FindByUser(_ context.Context, userID primitive.ObjectID, status string, _, _ int) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Match
	for _, m := range f.byID {
		if m.IsParticipant(userID) && (status == "" || m.Status == status) {
			out = append(out, cloneMatch(m))
		}
	}
	return out, nil
}

func (f *fakeMatches) FindExpired(_ context.Context, now time.Time, _ int64) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Match
	for _, m := range f.byID {
		if m.Status != models.MatchStatusCompleted && !now.Before(m.ExpiresAt) {
			out = append(out, cloneMatch(m))
		}
	}
	return out, nil
}

func (f *fakeMatches) CountByStatus(context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int64{}
	for _, m := range f.byID {
		out[m.Status]++
	}
	return out, nil
}

type fakeApplications struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.TutorApplication
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{byID: map[primitive.ObjectID]models.TutorApplication{}}
}

// Insert respeta el índice único parcial: una sola solicitud pending por usuario.
func (f *fakeApplications) Insert(_ context.Context, app *models.TutorApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.UserID == app.UserID && a.Status == models.TutorApplicationPending &&
			app.Status == models.TutorApplicationPending {
			return repository.ErrDuplicateKey
		}
	}
	f.byID[app.ID] = *app
	return nil
}

func (f *fakeApplications) FindByID(_ context.Context, id primitive.ObjectID) (*models.TutorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeApplications) FindPendingByUser(_ context.Context, userID primitive.ObjectID) (*models.TutorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.UserID == userID && a.Status == models.TutorApplicationPending {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeApplications) UpdateIfPending(_ context.Context, app *models.TutorApplication) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[app.ID]
	if !ok || stored.Status != models.TutorApplicationPending {
		return false, nil
	}
	f.byID[app.ID] = *app
	return true, nil
}

func (f *fakeApplications) FindByUser(_ context.Context, userID primitive.ObjectID, status string, _, _ int) ([]models.TutorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TutorApplication
	for _, a := range f.byID {
		if a.UserID == userID && (status == "" || a.Status == status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplications) FindAll(_ context.Context, status string, _, _ int) ([]models.TutorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TutorApplication
	for _, a := range f.byID {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDonations struct {
	byRef map[string]models.Donation
}

func newFakeDonations() *fakeDonations {
	return &fakeDonations{byRef: map[string]models.Donation{}}
}

func (f *fakeDonations) Insert(_ context.Context, d *models.Donation) error {
	if _, ok := f.byRef[d.Reference]; ok {
		return repository.ErrDuplicateKey
	}
	f.byRef[d.Reference] = *d
	return nil
}

func (f *fakeDonations) FindByReference(_ context.Context, ref string) (*models.Donation, error) {
	d, ok := f.byRef[ref]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeDonations) MarkCaptured(_ context.Context, ref string, at time.Time) (bool, error) {
	d, ok := f.byRef[ref]
	if !ok || d.Status != models.DonationPending {
		return false, nil
	}
	d.Status = models.DonationCaptured
	d.CapturedAt = &at
	f.byRef[ref] = d
	return true, nil
}

func (f *fakeDonations) List(_ context.Context, status string, _, _ int) ([]models.Donation, error) {
	var out []models.Donation
	for _, d := range f.byRef {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonations) Totals(context.Context) ([]models.DonationTotal, error) {
	byCur := map[string]*models.DonationTotal{}
	for _, d := range f.byRef {
		if d.Status != models.DonationCaptured {
			continue
		}
		t, ok := byCur[d.Currency]
		if !ok {
			t = &models.DonationTotal{Currency: d.Currency}
			byCur[d.Currency] = t
		}
		t.AmountCents += d.AmountCents
		t.Count++
	}
	out := make([]models.DonationTotal, 0, len(byCur))
	for _, t := range byCur {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

type fakeArchives struct {
	items []models.TranscriptArchive
}

func (f *fakeArchives) Insert(_ context.Context, a *models.TranscriptArchive) error {
	f.items = append(f.items, *a)
	return nil
}

func (f *fakeArchives) FindByUser(_ context.Context, userID primitive.ObjectID, _ int) ([]models.TranscriptArchive, error) {
	var out []models.TranscriptArchive
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeObjects struct {
	objects map[string][]byte
}

func (f *fakeObjects) Put(_ context.Context, name, _ string, data []byte) error {
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[name] = data
	return nil
}

func (f *fakeObjects) PresignedURL(_ context.Context, name string, _ time.Duration) (string, error) {
	return "https://objects.test/" + name, nil
}

type fakeLeaderboard struct {
	mu     sync.Mutex
	points map[string]float64
}

func (f *fakeLeaderboard) AddPoints(_ context.Context, userID string, points float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.points == nil {
		f.points = map[string]float64{}
	}
	f.points[userID] += points
	return nil
}

func (f *fakeLeaderboard) Top(_ context.Context, n int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LeaderboardEntry, 0, len(f.points))
	for id, p := range f.points {
		out = append(out, models.LeaderboardEntry{UserID: id, Points: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

type published struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key, payload})
	return nil
}

func (p *recordingPublisher) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.key == key {
			n++
		}
	}
	return n
}

type notification struct {
	room, event string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(room, event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{room, event})
}

func newTestUser(username, userType string) models.User {
	return models.User{
		ID:            primitive.NewObjectID(),
		Username:      username,
		Email:         username + "@example.com",
		UserType:      userType,
		LanguageLevel: "A1",
		Progress:      map[string]float64{},
	}
}

// fixedClock devuelve un reloj controlable desde el test.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }
