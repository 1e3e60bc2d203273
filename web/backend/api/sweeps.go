package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"path-sweep/internal/database"
	"path-sweep/web/backend/auth"
	"path-sweep/web/backend/middleware"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the issued JWT
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo contains user details
type UserInfo struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// ErrorResponse represents an error message
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// SweepHistoryResponse is the API response for sweep history
type SweepHistoryResponse struct {
	Entries []database.SweepRecord `json:"entries"`
	Count   int                    `json:"count"`
}

// SweepStatsResponse is the API response for sweep statistics
type SweepStatsResponse struct {
	Days  int                  `json:"days"`
	Stats []database.ActionStat `json:"stats"`
}

// LoginHandler handles user authentication
func LoginHandler(jwtManager *auth.JWTManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		// Credentials come from the environment; this backend is meant
		// to sit behind an operator-facing reverse proxy
		wantUser := os.Getenv("SWEEP_API_USER")
		wantPass := os.Getenv("SWEEP_API_PASSWORD")
		if wantUser == "" || wantPass == "" {
			respondError(w, "login disabled: credentials not configured", http.StatusServiceUnavailable)
			return
		}
		if req.Username != wantUser || req.Password != wantPass {
			respondError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		roles := []string{auth.RoleAdmin}
		token, err := jwtManager.GenerateToken("user-1", req.Username, roles)
		if err != nil {
			respondError(w, "failed to generate token", http.StatusInternalServerError)
			return
		}

		respondJSON(w, LoginResponse{
			Token:     token,
			ExpiresAt: time.Now().Add(24 * time.Hour),
			User:      UserInfo{Username: req.Username, Roles: roles},
		}, http.StatusOK)
	}
}

// HealthHandler returns server health status
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// GetSweepsHandler handles GET /api/v1/sweeps
// Query parameters: limit (default 100, max 1000), action, path (SQL LIKE)
func GetSweepsHandler(db *database.SweepDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok || !auth.HasPermission(claims.Roles, auth.PermissionViewHistory) {
			respondError(w, "unauthorized", http.StatusForbidden)
			return
		}

		limit := 100
		if lStr := r.URL.Query().Get("limit"); lStr != "" {
			if l, err := strconv.Atoi(lStr); err == nil && l > 0 && l <= 1000 {
				limit = l
			}
		}

		var (
			records []database.SweepRecord
			err     error
		)
		switch {
		case r.URL.Query().Get("action") != "":
			records, err = db.GetSweepsByAction(r.URL.Query().Get("action"))
		case r.URL.Query().Get("path") != "":
			records, err = db.GetSweepsByPath(r.URL.Query().Get("path"))
		default:
			records, err = db.GetRecentSweeps(limit)
		}
		if err != nil {
			respondError(w, "failed to query sweep history", http.StatusInternalServerError)
			return
		}

		if len(records) > limit {
			records = records[:limit]
		}

		respondJSON(w, SweepHistoryResponse{Entries: records, Count: len(records)}, http.StatusOK)
	}
}

// GetStatsHandler handles GET /api/v1/sweeps/stats
func GetStatsHandler(db *database.SweepDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok || !auth.HasPermission(claims.Roles, auth.PermissionViewStats) {
			respondError(w, "unauthorized", http.StatusForbidden)
			return
		}

		days := 30
		if dStr := r.URL.Query().Get("days"); dStr != "" {
			if d, err := strconv.Atoi(dStr); err == nil && d > 0 && d <= 3650 {
				days = d
			}
		}

		stats, err := db.GetStats(days)
		if err != nil {
			respondError(w, "failed to query sweep statistics", http.StatusInternalServerError)
			return
		}

		respondJSON(w, SweepStatsResponse{Days: days, Stats: stats}, http.StatusOK)
	}
}

// TriggerSweepHandler handles POST /api/v1/sweeps/trigger by forwarding
// to the daemon's trigger endpoint
func TriggerSweepHandler(daemonAddr string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok || !auth.HasPermission(claims.Roles, auth.PermissionTriggerSweep) {
			respondError(w, "unauthorized", http.StatusForbidden)
			return
		}

		resp, err := http.Post(daemonAddr+"/trigger", "text/plain", nil)
		if err != nil {
			respondError(w, "daemon unreachable", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respondError(w, "daemon refused trigger", http.StatusBadGateway)
			return
		}

		respondJSON(w, map[string]string{"status": "triggered"}, http.StatusOK)
	}
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, ErrorResponse{Error: message, Code: status}, status)
}
