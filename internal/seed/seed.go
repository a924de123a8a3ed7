// Package seed populates a freshly migrated database with the default sample
// models, skills, agents and workflows the web UI presents on first run.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"agentstudio/internal/store"

	"github.com/rs/zerolog/log"
)

// GuestUser owns every seeded record.
const GuestUser = "guestuser@gmail.com"

// Names of the two seeded workflows. Their presence is the marker that the
// database has already been initialized.
const (
	DefaultWorkflowName = "Default Workflow"
	TravelWorkflowName  = "Travel Planning Workflow"
)

// Seed inserts the default sample data. It is idempotent: when both seeded
// workflows already exist the database is left untouched. Call order matters:
// models, skills and agents must exist before the workflows link them.
func Seed(ctx context.Context, db *sql.DB) error {
	s := store.New(db)

	seeded, err := alreadySeeded(ctx, s)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().Msg("database already initialized with default workflows")
		return nil
	}
	log.Info().Msg("initializing database with default workflows")

	models, err := Models(ctx, s)
	if err != nil {
		return fmt.Errorf("seed models: %w", err)
	}
	skills, err := Skills(ctx, s)
	if err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	agents, err := Agents(ctx, s)
	if err != nil {
		return fmt.Errorf("seed agents: %w", err)
	}
	if err := Workflows(ctx, s, models, skills, agents); err != nil {
		return fmt.Errorf("seed workflows: %w", err)
	}

	log.Info().Msg("seeded default workflows")
	return nil
}

// alreadySeeded reports whether both seeded workflows exist.
func alreadySeeded(ctx context.Context, s *store.Store) (bool, error) {
	workflows, err := s.Workflows.List(ctx, "")
	if err != nil {
		return false, fmt.Errorf("list workflows: %w", err)
	}

	var hasDefault, hasTravel bool
	for _, w := range workflows {
		switch w.Name {
		case DefaultWorkflowName:
			hasDefault = true
		case TravelWorkflowName:
			hasTravel = true
		}
	}
	return hasDefault && hasTravel, nil
}
