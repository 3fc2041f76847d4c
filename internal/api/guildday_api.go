package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/guildday/guildday/internal/domain"
)

// ─── Daily logs ─────────────────────────────────────────────────────────────

// --- POST /api/log (submit or edit a day's activity) ---

func (s *Server) handleSubmitLog(w http.ResponseWriter, r *http.Request) {
	var log domain.ActivityLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.SubmitLog(log)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- GET /api/logs?member_id=&cohort_id=&from=&to= ---

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member_id")
	cohortID := queryInt64(r, "cohort_id")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if memberID == "" || cohortID == 0 {
		writeError(w, http.StatusBadRequest, "member_id and cohort_id are required")
		return
	}
	if to == "" {
		to = domain.Today()
	}
	if from == "" {
		from = domain.AddDays(to, -30)
	}
	if !domain.ValidDate(from) || !domain.ValidDate(to) {
		writeError(w, http.StatusBadRequest, "from and to must be YYYY-MM-DD")
		return
	}

	logs, err := s.db.ListDailyLogs(memberID, cohortID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs": logs,
	})
}

// ─── Stats & quests ─────────────────────────────────────────────────────────

// --- GET /api/stats?member_id=&cohort_id= ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member_id")
	cohortID := queryInt64(r, "cohort_id")
	if memberID == "" || cohortID == 0 {
		writeError(w, http.StatusBadRequest, "member_id and cohort_id are required")
		return
	}

	stats, err := s.db.GetMemberStats(memberID, cohortID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if stats == nil {
		writeDomainError(w, domain.ErrStatsNotFound)
		return
	}

	resp := map[string]interface{}{
		"stats": stats,
	}
	if next, ok := domain.NextRank(stats.Rank); ok {
		resp["next_rank"] = next.Rank
		resp["xp_to_next"] = next.MinXP - stats.XP
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- GET /api/quests?member_id=&cohort_id=&date= ---

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member_id")
	cohortID := queryInt64(r, "cohort_id")
	date := r.URL.Query().Get("date")
	if memberID == "" || cohortID == 0 {
		writeError(w, http.StatusBadRequest, "member_id and cohort_id are required")
		return
	}
	if date == "" {
		date = domain.Today()
	}
	if !domain.ValidDate(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	quests, err := s.db.ListDailyQuests(memberID, cohortID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   date,
		"quests": quests,
	})
}

// ─── Cohorts & invites ──────────────────────────────────────────────────────

// --- POST /api/join ---

type joinRequest struct {
	MemberID string `json:"member_id"`
	Code     string `json:"code"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := s.cohorts.Join(req.MemberID, req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"membership": membership,
	})
}

// --- POST /api/invites ---

type createInviteRequest struct {
	CohortID int64             `json:"cohort_id"`
	Role     domain.MemberRole `json:"role"`
	MaxUses  int               `json:"max_uses"`
	TTLHours int               `json:"ttl_hours"`
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, err := s.cohorts.CreateInvite(req.CohortID, req.Role, req.MaxUses,
		time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"invite": invite,
	})
}

// ─── Locations & check-ins ──────────────────────────────────────────────────

// --- GET /api/locations?program_id= ---

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	programID := queryInt64(r, "program_id")
	if programID == 0 {
		writeError(w, http.StatusBadRequest, "program_id is required")
		return
	}

	locations, err := s.db.ListLocations(programID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
	})
}

// --- POST /api/checkin ---

type checkinRequest struct {
	MemberID   string `json:"member_id"`
	LocationID int64  `json:"location_id"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Date == "" {
		req.Date = domain.Today()
	}

	record, completed, err := s.checkins.CheckIn(req.MemberID, req.LocationID, req.Date, req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checkin":             record,
		"completed_quest_ids": completed,
	})
}

// ─── Admin ──────────────────────────────────────────────────────────────────

// --- POST /api/admin/generate-daily ---

type generateRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleGenerateDaily(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // Empty body means today
	}
	if req.Date == "" {
		req.Date = domain.Today()
	}

	n, err := s.questgen.GenerateDaily(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":      req.Date,
		"generated": n,
	})
}

func queryInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}
