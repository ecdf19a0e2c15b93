package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"clubhouse/internal/domain"
)

// seedFile is the YAML document applied at startup when SEED_FILE is set.
type seedFile struct {
	Users  []seedUser  `yaml:"users"`
	Events []seedEvent `yaml:"events"`
}

type seedUser struct {
	Email       string `yaml:"email"`
	Username    string `yaml:"username"`
	DisplayName string `yaml:"displayName"`
	Role        string `yaml:"role"`
}

type seedEvent struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
	Location    string `yaml:"location"`
}

// Seed applies the YAML seed file. Idempotent: users already present by
// email, and events already present by (name, date), are skipped.
func Seed(ctx context.Context, path string, users domain.UserRepository, events domain.EventRepository, logger *slog.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, su := range doc.Users {
		if su.Email == "" || su.Username == "" {
			return fmt.Errorf("seed user %q: email and username are required", su.Username)
		}
		if _, err := users.GetByEmail(ctx, su.Email); err == nil {
			continue
		} else if _, ok := err.(*domain.NotFoundError); !ok {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}

		role := domain.Role(su.Role)
		if su.Role == "" {
			role = domain.RoleMember
		}
		if !role.Valid() {
			return fmt.Errorf("seed user %s: unknown role %q", su.Email, su.Role)
		}
		u := &domain.User{
			Email:       su.Email,
			Username:    su.Username,
			DisplayName: su.DisplayName,
			Role:        role,
		}
		if _, err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}
		logger.Info("seeded user", "email", su.Email, "role", role)
	}

	if len(doc.Events) == 0 {
		return nil
	}

	existing, err := events.List(ctx)
	if err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.Name+"|"+e.Date] = true
	}

	for _, se := range doc.Events {
		req := domain.EventRequest{
			Name:        se.Name,
			Description: se.Description,
			Date:        se.Date,
			Time:        se.Time,
			Location:    se.Location,
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("seed event %q: %w", se.Name, err)
		}
		if seen[se.Name+"|"+se.Date] {
			continue
		}
		e := &domain.Event{}
		req.Apply(e)
		if _, err := events.Create(ctx, e); err != nil {
			return fmt.Errorf("seed event %q: %w", se.Name, err)
		}
		logger.Info("seeded event", "name", se.Name, "date", se.Date)
	}

	return nil
}
