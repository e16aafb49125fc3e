package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/salmancert/atomic/internal/domain"
	"github.com/salmancert/atomic/internal/infra/sqlite"
)

// ─── Usage ingestion ─────────────────────────────────────────────────────────

type recordUsageRequest struct {
	Day     string `json:"day"` // YYYY-MM-DD, defaults to today
	App     string `json:"app"`
	Minutes int    `json:"minutes"`
}

func (s *Server) handleRecordUsage(w http.ResponseWriter, r *http.Request) {
	var req recordUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.App == "" {
		writeError(w, http.StatusBadRequest, "app is required")
		return
	}

	day := domain.Day(req.Day)
	if day == "" {
		day = domain.DayOf(time.Now())
	}

	sample := domain.UsageSample{Day: day, App: domain.AppID(req.App), Minutes: req.Minutes}
	if err := s.engine.Record(sample); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.db.UpsertSample(sample, time.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"day":    day,
		"app":    req.App,
		"streak": s.engine.Streaks()[domain.AppID(req.App)],
	})
}

func (s *Server) handleGetUsage(w http.ResponseWriter, r *http.Request) {
	app := r.URL.Query().Get("app")
	if app == "" {
		writeError(w, http.StatusBadRequest, "app is required")
		return
	}
	day := domain.Day(r.URL.Query().Get("day"))
	if day == "" {
		day = domain.DayOf(time.Now())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"day":     day,
		"app":     app,
		"minutes": s.engine.Usage(day, domain.AppID(app)),
	})
}

// ─── Location fixes ──────────────────────────────────────────────────────────

func (s *Server) handleLocationFix(w http.ResponseWriter, r *http.Request) {
	var fix domain.Fix
	if err := json.NewDecoder(r.Body).Decode(&fix); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	notif, err := s.engine.LocationFix(fix)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyCatalog) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fired":        notif != nil,
		"notification": notif,
	})
}

// ─── Daily check-in ──────────────────────────────────────────────────────────

type checkinRequest struct {
	Day string `json:"day"` // YYYY-MM-DD, defaults to today
}

func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	day := domain.Day(req.Day)
	if day == "" {
		day = domain.DayOf(time.Now())
	}

	result, err := s.engine.CheckIn(day)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNoLimitsConfigured) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}

	s.journalResult(result)
	if err := s.db.SetState("last_checkin_day", string(day)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// journalResult mirrors the daemon's event journaling for API-driven
// check-ins.
func (s *Server) journalResult(result domain.DailyResult) {
	now := time.Now()
	for _, hit := range result.Milestones {
		_ = s.db.InsertEvent(sqlite.Event{
			ID: uuid.NewString(), Kind: sqlite.EventMilestone,
			App: string(hit.App), Label: hit.Label, Day: string(result.Day), CreatedAt: now,
		})
	}
	for _, reward := range result.Rewards {
		_ = s.db.InsertEvent(sqlite.Event{
			ID: uuid.NewString(), Kind: sqlite.EventReward,
			Label: reward, Day: string(result.Day), CreatedAt: now,
		})
	}
}

// ─── Status surfaces ─────────────────────────────────────────────────────────

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	streaks := s.engine.Streaks()

	type streakEntry struct {
		Current int `json:"current"`
		Longest int `json:"longest"`
	}
	out := make(map[string]streakEntry, len(streaks))
	for app, days := range streaks {
		out[string(app)] = streakEntry{Current: days, Longest: s.engine.LongestStreak(app)}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"streaks": out})
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points":  s.engine.Points(),
		"granted": s.engine.GrantedRewards(),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 50)
	events, err := s.db.ListEvents(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// ─── Notifications ───────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 20)
	pending, err := s.db.ListPendingNotifications(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": pending})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.db.MarkNotificationShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryLimit(r *http.Request, def int) int {
	limit := def
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}
