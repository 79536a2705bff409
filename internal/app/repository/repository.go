// Package repository defines the data-access contracts for every dashboard
// resource, with one GORM/Postgres and one mongo-driver implementation per
// interface. The backend is selected exactly once, from the connector
// handle's type, instead of branching per query.
package repository

import (
	"github.com/filegram/panel/internal/infra/db"
)

// Repositories bundles every resource repository for the selected backend.
type Repositories struct {
	Users      UserRepository
	Files      FileRepository
	Links      LinkRepository
	Admins     AdminRepository
	Broadcasts BroadcastRepository
	EnvVars    EnvVarRepository
	Fsub       FsubRepository
	Settings   SettingsRepository
	Stats      StatsRepository
	Status     StatusRepository
}

// New selects the implementation set matching the handle's backend.
func New(h *db.Handle) *Repositories {
	if h.Type == db.TypeMongo {
		m := h.Mongo
		return &Repositories{
			Users:      newMongoUserRepository(m),
			Files:      newMongoFileRepository(m),
			Links:      newMongoLinkRepository(m),
			Admins:     newMongoAdminRepository(m),
			Broadcasts: newMongoBroadcastRepository(m),
			EnvVars:    newMongoEnvVarRepository(m),
			Fsub:       newMongoFsubRepository(m),
			Settings:   newMongoSettingsRepository(m),
			Stats:      newMongoStatsRepository(m),
			Status:     newMongoStatusRepository(m),
		}
	}

	g := h.Gorm
	return &Repositories{
		Users:      newGormUserRepository(g),
		Files:      newGormFileRepository(g),
		Links:      newGormLinkRepository(g),
		Admins:     newGormAdminRepository(g),
		Broadcasts: newGormBroadcastRepository(g),
		EnvVars:    newGormEnvVarRepository(g),
		Fsub:       newGormFsubRepository(g),
		Settings:   newGormSettingsRepository(g),
		Stats:      newGormStatsRepository(g),
		Status:     newGormStatusRepository(g),
	}
}

// pageWindow normalizes pagination arguments shared by all list queries.
func pageWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
