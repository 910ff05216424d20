package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/nutrition"
	"github.com/foodmind/foodmind-backend/internal/service"
)

type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	profiles map[string]domain.UserProfile
	history  []domain.MetricHistoryEntry
	logs     map[string]domain.MealLogEntry
	foods    []domain.FoodItem
	resets   []domain.PasswordReset
	mail     []string
}

func newMemStore(foods ...domain.FoodItem) *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		profiles: map[string]domain.UserProfile{},
		logs:     map[string]domain.MealLogEntry{},
		foods:    foods,
	}
}

func (m *memStore) Create(_ context.Context, id, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[email]; ok {
		return fmt.Errorf("failed to create account: %w", &mysql.MySQLError{Number: 1062})
	}
	m.accounts[email] = domain.Account{ID: id, Email: email, PasswordHash: hash}
	return nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[email]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, a := range m.accounts {
		if a.ID == id {
			a.PasswordHash = hash
			m.accounts[email] = a
			return nil
		}
	}
	return fmt.Errorf("account %s not found", id)
}

type resetStore struct{ *memStore }

func (r resetStore) Create(_ context.Context, accountID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, domain.PasswordReset{ID: int64(len(r.resets) + 1), AccountID: accountID, Code: code, ExpiresAt: expiresAt})
	return nil
}

func (r resetStore) GetValid(_ context.Context, email, code string, now time.Time) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[email]
	if !ok {
		return nil, nil
	}
	for _, p := range r.resets {
		if p.AccountID == a.ID && p.Code == code && !p.Used && p.ExpiresAt.After(now) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r resetStore) MarkUsed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.resets {
		if r.resets[i].ID == id {
			r.resets[i].Used = true
		}
	}
	return nil
}

func (r resetStore) DeleteByAccountID(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.resets {
		if r.resets[i].AccountID == accountID {
			r.resets[i].Used = true
		}
	}
	return nil
}

// SendPasswordReset records "to:code" instead of mailing.
func (m *memStore) SendPasswordReset(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mail = append(m.mail, to+":"+code)
	return nil
}

type profileStore struct{ *memStore }

func (p profileStore) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.profiles[id]
	if !ok {
		return nil, nil
	}
	return &prof, nil
}

func (p profileStore) Upsert(_ context.Context, prof *domain.UserProfile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[prof.ID] = *prof
	return nil
}

type historyStore struct{ *memStore }

func (h historyStore) Append(_ context.Context, e *domain.MetricHistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append(h.history, *e)
	return nil
}

func (h historyStore) ListByUserID(_ context.Context, userID string) ([]domain.MetricHistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []domain.MetricHistoryEntry
	for _, e := range h.history {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type logStore struct{ *memStore }

func (l logStore) ListByDateRange(_ context.Context, userID, from, to string) ([]domain.MealLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.MealLogEntry
	for _, e := range l.logs {
		if e.UserID == userID && e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l logStore) Put(_ context.Context, e *domain.MealLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs[e.UserID+"|"+e.Key()] = *e
	return nil
}

func (m *memStore) ListAll(context.Context) ([]domain.FoodItem, error) {
	return m.foods, nil
}

func newTestServer(t *testing.T, store *memStore) *httptest.Server {
	t.Helper()
	profiles, history, logs := profileStore{store}, historyStore{store}, logStore{store}

	router := NewRouter(RouterConfig{JWTSecret: "secret", AllowedOrigins: "*"}, Handlers{
		Auth:           NewAuthHandler("secret", store, service.NewPasswordResetService(store, resetStore{store}, store)),
		Profile:        NewProfileHandler(service.NewProfileService(profiles, history)),
		Meals:          NewMealHandler(service.NewMealLogService(logs)),
		Recommendation: NewRecommendationHandler(service.NewRecommendationService(profiles, logs, store, nutrition.NewComboGenerator(nil))),
		Dashboard:      NewDashboardHandler(service.NewDashboardService(profiles, history, logs)),
		Foods:          NewFoodHandler(store),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestEndToEnd(t *testing.T) {
	all := domain.MealEligibility{Breakfast: true, Lunch: true, Dinner: true}
	store := newMemStore(
		domain.FoodItem{ID: "1", Name: "pho", Category: domain.CategoryMain, Calories: 450, Meals: all},
		domain.FoodItem{ID: "2", Name: "banh mi", Category: domain.CategoryMain, Calories: 380, Meals: all},
		domain.FoodItem{ID: "3", Name: "che", Category: domain.CategoryDessert, Calories: 90, Meals: all},
	)
	srv := newTestServer(t, store)

	if code := call(t, srv, http.MethodGet, "/api/v1/health", "", nil, nil); code != http.StatusOK {
		t.Fatalf("health: %d", code)
	}

	creds := domain.TokenRequest{Email: " Lan@Example.com ", Password: "secret1"}
	var reg domain.TokenResponse
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/register", "", creds, &reg); code != http.StatusCreated {
		t.Fatalf("register: %d", code)
	}
	if reg.Token == "" || reg.UserID == "" {
		t.Fatalf("register response = %+v", reg)
	}
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/register", "", creds, nil); code != http.StatusConflict {
		t.Errorf("duplicate register: %d", code)
	}
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", domain.TokenRequest{Email: "lan@example.com", Password: "wrong"}, nil); code != http.StatusUnauthorized {
		t.Errorf("bad login: %d", code)
	}
	var login domain.TokenResponse
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", creds, &login); code != http.StatusOK {
		t.Fatalf("login: %d", code)
	}
	if login.UserID != reg.UserID {
		t.Errorf("login user %s, registered %s", login.UserID, reg.UserID)
	}
	token := login.Token

	if code := call(t, srv, http.MethodGet, "/api/v1/dashboard", "", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("dashboard without token: %d", code)
	}
	if code := call(t, srv, http.MethodGet, "/api/v1/recommendations", token, nil, nil); code != http.StatusNotFound {
		t.Errorf("recommendations before profile: %d", code)
	}

	bad := domain.UpdateProfileRequest{Weight: 70, Height: 170, Age: 30, Sex: "x", ActivityLevel: 1.5, Goal: domain.GoalLose}
	if code := call(t, srv, http.MethodPut, "/api/v1/profile", token, bad, nil); code != http.StatusBadRequest {
		t.Errorf("invalid profile: %d", code)
	}
	good := bad
	good.Sex = domain.SexMale
	var updated domain.UpdateProfileResponse
	if code := call(t, srv, http.MethodPut, "/api/v1/profile", token, good, &updated); code != http.StatusOK {
		t.Fatalf("update profile: %d", code)
	}
	if updated.TDEE != 1887 {
		t.Errorf("tdee = %d, want 1887", updated.TDEE)
	}

	var rec map[domain.Slot]struct {
		Budget  int                   `json:"budget"`
		Options []*domain.ComboResult `json:"options"`
	}
	if code := call(t, srv, http.MethodGet, "/api/v1/recommendations", token, nil, &rec); code != http.StatusOK {
		t.Fatalf("recommendations: %d", code)
	}
	if rec[domain.SlotLunch].Budget != 754 || len(rec[domain.SlotLunch].Options) != 2 {
		t.Errorf("lunch = %+v", rec[domain.SlotLunch])
	}

	meals := domain.LogMealsRequest{Logs: []domain.MealLogInput{{
		Meal:  domain.SlotLunch,
		Foods: []domain.LoggedFood{{Name: "pho", Category: domain.CategoryMain, Calories: 450}},
	}}}
	if code := call(t, srv, http.MethodPost, "/api/v1/meals", token, meals, nil); code != http.StatusCreated {
		t.Fatalf("log meals: %d", code)
	}

	var dash domain.Dashboard
	if code := call(t, srv, http.MethodGet, "/api/v1/dashboard", token, nil, &dash); code != http.StatusOK {
		t.Fatalf("dashboard: %d", code)
	}
	if dash.Summary.TodayCalories != 450 || dash.Summary.TDEE != 1887 || len(dash.WeeklyChart) != 7 {
		t.Errorf("dashboard summary = %+v", dash.Summary)
	}

	var history []domain.DayHistory
	if code := call(t, srv, http.MethodGet, "/api/v1/meals/history", token, nil, &history); code != http.StatusOK || len(history) != 1 {
		t.Errorf("history: %d %+v", code, history)
	}

	var entries []domain.MetricHistoryEntry
	if code := call(t, srv, http.MethodGet, "/api/v1/profile/history", token, nil, &entries); code != http.StatusOK || len(entries) != 1 {
		t.Errorf("profile history: %d %+v", code, entries)
	}

	var foods []domain.FoodItem
	if code := call(t, srv, http.MethodGet, "/api/v1/foods", token, nil, &foods); code != http.StatusOK || len(foods) != 3 {
		t.Errorf("foods: %d %+v", code, foods)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t, newMemStore())
	cases := []domain.TokenRequest{
		{Email: "", Password: "secret1"},
		{Email: "not-an-email", Password: "secret1"},
		{Email: "a@b.co", Password: "123"},
	}
	for _, c := range cases {
		if code := call(t, srv, http.MethodPost, "/api/v1/auth/register", "", c, nil); code != http.StatusBadRequest {
			t.Errorf("%+v: status = %d, want 400", c, code)
		}
	}
}

func TestPasswordResetEndpoints(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(t, store)

	creds := domain.TokenRequest{Email: "lan@example.com", Password: "old-secret"}
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/register", "", creds, nil); code != http.StatusCreated {
		t.Fatalf("register: %d", code)
	}

	if code := call(t, srv, http.MethodPost, "/api/v1/auth/forgot-password", "", domain.ForgotPasswordRequest{Email: "ghost@example.com"}, nil); code != http.StatusOK {
		t.Errorf("forgot unknown email: %d", code)
	}
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/forgot-password", "", domain.ForgotPasswordRequest{Email: "Lan@Example.com"}, nil); code != http.StatusOK {
		t.Fatalf("forgot: %d", code)
	}
	if len(store.mail) != 1 {
		t.Fatalf("mail = %v, want one message", store.mail)
	}
	to, resetCode, _ := strings.Cut(store.mail[0], ":")
	if to != "lan@example.com" || len(resetCode) != 6 {
		t.Fatalf("mail = %q", store.mail[0])
	}

	confirm := func(code, password string) int {
		return call(t, srv, http.MethodPost, "/api/v1/auth/confirm-forgot-password", "",
			domain.ConfirmForgotPasswordRequest{Email: "lan@example.com", Code: code, Password: password}, nil)
	}
	wrong := "000000"
	if resetCode == wrong {
		wrong = "000001"
	}
	if code := confirm(wrong, "new-secret"); code != http.StatusBadRequest {
		t.Errorf("wrong code: %d", code)
	}
	if code := confirm("", "new-secret"); code != http.StatusBadRequest {
		t.Errorf("missing code: %d", code)
	}
	if code := confirm(resetCode, "new-secret"); code != http.StatusOK {
		t.Fatalf("confirm: %d", code)
	}
	if code := confirm(resetCode, "other-secret"); code != http.StatusBadRequest {
		t.Errorf("reused code: %d", code)
	}

	if code := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", creds, nil); code != http.StatusUnauthorized {
		t.Errorf("login with old password: %d", code)
	}
	creds.Password = "new-secret"
	if code := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", creds, nil); code != http.StatusOK {
		t.Errorf("login with new password: %d", code)
	}
}
