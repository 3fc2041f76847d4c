package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/guildday/guildday/internal/app/checkin"
	"github.com/guildday/guildday/internal/app/cohort"
	"github.com/guildday/guildday/internal/app/engine"
	"github.com/guildday/guildday/internal/app/questgen"
	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

func newTestServer(t *testing.T) (*Server, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := NewServer(db, engine.New(db), questgen.New(db), cohort.New(db), checkin.New(db))
	return srv, db
}

// seedMember creates program → cohort → member with zeroed stats.
func seedMember(t *testing.T, db *sqlite.DB) (string, int64) {
	t.Helper()
	programID, err := db.InsertProgram(domain.Program{Name: "Field Program"})
	if err != nil {
		t.Fatalf("insert program: %v", err)
	}
	cohortID, err := db.InsertCohort(domain.Cohort{
		ProgramID: programID, Name: "API Cohort",
		StartsOn: "2025-06-01", EndsOn: "2025-09-01", Active: true,
	})
	if err != nil {
		t.Fatalf("insert cohort: %v", err)
	}
	memberID := uuid.NewString()
	if err := db.InsertMembership(domain.Membership{
		CohortID: cohortID, MemberID: memberID, Role: domain.RoleAgent,
	}); err != nil {
		t.Fatalf("insert membership: %v", err)
	}
	if err := db.InsertMemberStats(domain.MemberStats{
		MemberID: memberID, CohortID: cohortID, Rank: domain.RankE,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("insert stats: %v", err)
	}
	return memberID, cohortID
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

// ─── Health & version ───────────────────────────────────────────────────────

func TestAPI_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestAPI_Version(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.SetVersion("1.2.3")

	w := doJSON(t, srv, "GET", "/api/version", "")
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["version"] != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", body["version"])
	}
}

// ─── Log submission ─────────────────────────────────────────────────────────

func TestAPI_SubmitLog(t *testing.T) {
	srv, db := newTestServer(t)
	memberID, cohortID := seedMember(t, db)

	payload, _ := json.Marshal(domain.ActivityLog{
		MemberID: memberID, CohortID: cohortID, LogDate: "2025-07-14",
		Steps: 10000, WorkoutDone: true, Convos: 5, LearningMinutes: 20,
		ContentDone: true,
	})
	w := doJSON(t, srv, "POST", "/api/log", string(payload))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var result engine.SubmitResult
	json.NewDecoder(w.Body).Decode(&result)
	if result.XPGain != 55 {
		t.Errorf("xp_gain = %d, want 55", result.XPGain)
	}
	if result.Stats.XP != 55 || result.Stats.Streak != 1 {
		t.Errorf("stats = %+v, want xp 55 streak 1", result.Stats)
	}
}

func TestAPI_SubmitLog_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, "POST", "/api/log", `{"log_date":"not-a-date"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = doJSON(t, srv, "POST", "/api/log", `{broken json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// ─── Stats ──────────────────────────────────────────────────────────────────

func TestAPI_Stats(t *testing.T) {
	srv, db := newTestServer(t)
	memberID, cohortID := seedMember(t, db)

	payload, _ := json.Marshal(domain.ActivityLog{
		MemberID: memberID, CohortID: cohortID, LogDate: "2025-07-14",
		WorkoutDone: true,
	})
	if w := doJSON(t, srv, "POST", "/api/log", string(payload)); w.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, srv, "GET", "/api/stats?member_id="+memberID+"&cohort_id="+jsonInt(cohortID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Stats    domain.MemberStats `json:"stats"`
		NextRank domain.Rank        `json:"next_rank"`
		XPToNext int                `json:"xp_to_next"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if body.Stats.XP != 15 || body.Stats.Rank != domain.RankE {
		t.Errorf("stats = %+v, want xp 15 rank E", body.Stats)
	}
	if body.NextRank != domain.RankD || body.XPToNext != 485 {
		t.Errorf("next rank %s in %d xp, want D in 485", body.NextRank, body.XPToNext)
	}
}

func TestAPI_Stats_NotFound(t *testing.T) {
	srv, db := newTestServer(t)
	seedMember(t, db)

	w := doJSON(t, srv, "GET", "/api/stats?member_id=nobody&cohort_id=1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPI_Stats_MissingParams(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv, "GET", "/api/stats", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// ─── Join flow ──────────────────────────────────────────────────────────────

func TestAPI_InviteAndJoin(t *testing.T) {
	srv, db := newTestServer(t)
	_, cohortID := seedMember(t, db)

	w := doJSON(t, srv, "POST", "/api/invites",
		`{"cohort_id":`+jsonInt(cohortID)+`,"role":"agent","max_uses":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create invite: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Invite domain.Invite `json:"invite"`
	}
	json.NewDecoder(w.Body).Decode(&created)
	if created.Invite.Code == "" {
		t.Fatal("invite has no code")
	}

	newcomer := uuid.NewString()
	w = doJSON(t, srv, "POST", "/api/join",
		`{"member_id":"`+newcomer+`","code":"`+created.Invite.Code+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("join: %d %s", w.Code, w.Body.String())
	}

	// Joining twice conflicts
	w = doJSON(t, srv, "POST", "/api/join",
		`{"member_id":"`+newcomer+`","code":"`+created.Invite.Code+`"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("rejoin status = %d, want %d", w.Code, http.StatusConflict)
	}

	// Unknown code is a 404
	w = doJSON(t, srv, "POST", "/api/join",
		`{"member_id":"`+uuid.NewString()+`","code":"NOSUCHCODE"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("bad code status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Admin gate ─────────────────────────────────────────────────────────────

func TestAPI_GenerateDaily_RequiresSecret(t *testing.T) {
	srv, db := newTestServer(t)
	seedMember(t, db)
	srv.SetCronSecret("hunter2")

	// No token
	w := doJSON(t, srv, "POST", "/api/admin/generate-daily", `{"date":"2025-07-14"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Wrong token
	req := httptest.NewRequest("POST", "/api/admin/generate-daily",
		strings.NewReader(`{"date":"2025-07-14"}`))
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Right token
	req = httptest.NewRequest("POST", "/api/admin/generate-daily",
		strings.NewReader(`{"date":"2025-07-14"}`))
	req.Header.Set("Authorization", "Bearer hunter2")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_GenerateDaily_NoSecretConfigured(t *testing.T) {
	srv, _ := newTestServer(t)

	// With no secret set, the admin surface stays closed.
	req := httptest.NewRequest("POST", "/api/admin/generate-daily", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// ─── Quests & check-ins ─────────────────────────────────────────────────────

func TestAPI_QuestsEndpoint(t *testing.T) {
	srv, db := newTestServer(t)
	memberID, cohortID := seedMember(t, db)
	srv.SetCronSecret("hunter2")

	if _, err := db.InsertQuestTemplate(domain.QuestTemplate{
		ProgramID: 1, QuestType: domain.QuestFitness,
		Title: "Train: any workout", MinRank: domain.RankE, Active: true,
	}); err != nil {
		t.Fatalf("insert template: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/admin/generate-daily",
		strings.NewReader(`{"date":"2025-07-14"}`))
	req.Header.Set("Authorization", "Bearer hunter2")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", rec.Code, rec.Body.String())
	}

	w := doJSON(t, srv, "GET",
		"/api/quests?member_id="+memberID+"&cohort_id="+jsonInt(cohortID)+"&date=2025-07-14", "")
	if w.Code != http.StatusOK {
		t.Fatalf("quests: %d %s", w.Code, w.Body.String())
	}
	var body struct {
		Quests []domain.DailyQuest `json:"quests"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	if len(body.Quests) != 1 || body.Quests[0].Title != "Train: any workout" {
		t.Errorf("quests = %+v, want the generated workout quest", body.Quests)
	}
}

func TestAPI_Checkin(t *testing.T) {
	srv, db := newTestServer(t)
	memberID, _ := seedMember(t, db)

	locationID, err := db.InsertLocation(domain.Location{
		ProgramID: 1, Zone: "Harbor", Name: "Pier Gym", Category: "fitness",
	})
	if err != nil {
		t.Fatalf("insert location: %v", err)
	}

	w := doJSON(t, srv, "POST", "/api/checkin",
		`{"member_id":"`+memberID+`","location_id":`+jsonInt(locationID)+`,"date":"2025-07-14"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("checkin: %d %s", w.Code, w.Body.String())
	}

	// Unknown location
	w = doJSON(t, srv, "POST", "/api/checkin",
		`{"member_id":"`+memberID+`","location_id":9999}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPI_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/log", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
