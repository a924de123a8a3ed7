package admin

import (
	"database/sql"
	"fmt"
	"net/http"

	"agentstudio/internal/api"
	"agentstudio/internal/seed"
	"agentstudio/internal/version"
)

// Handler serves the admin API at /_studio/.
type Handler struct {
	db *sql.DB
}

// dataTableNames lists all data tables in foreign-key-safe deletion order.
var dataTableNames = []string{
	"messages",
	"sessions",
	"workflow_agents",
	"agent_agents",
	"agent_skills",
	"agent_models",
	"workflows",
	"agents",
	"skills",
	"models",
}

// Reset drops all data from all tables and re-runs the seed.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	for _, table := range dataTableNames {
		if _, err := h.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			corrID := api.CorrelationID(ctx)
			api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(
				fmt.Sprintf("failed to clear table %s: %s", table, err), corrID))
			return
		}
	}

	if err := seed.Seed(ctx, h.db); err != nil {
		corrID := api.CorrelationID(ctx)
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(
			fmt.Sprintf("failed to re-seed: %s", err), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedData runs the seed without dropping existing data first.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := seed.Seed(r.Context(), h.db); err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(
			fmt.Sprintf("failed to seed: %s", err), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version reports the application version.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"version": version.Version})
}
