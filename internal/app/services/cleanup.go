package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/repositories"
	"github.com/coursehub/coursehub/internal/pkg/filestorage"
)

// unitDirCleaner removes upload directories of units that a cascading delete
// is about to remove. Unit ids must be collected before the delete runs.
type unitDirCleaner struct {
	hierarchy *repositories.HierarchyRepository
	storage   filestorage.FileStorage
	log       zerolog.Logger
}

func (c *unitDirCleaner) collect(ctx context.Context, scope models.Scope) []int64 {
	if c == nil {
		return nil
	}
	ids, err := c.hierarchy.UnitIDsInScope(ctx, scope)
	if err != nil {
		c.log.Warn().Err(err).Str("scope", scope.Level()).Msg("Could not list units for disk cleanup")
		return nil
	}
	return ids
}

func (c *unitDirCleaner) remove(unitIDs []int64) {
	if c == nil {
		return
	}
	for _, id := range unitIDs {
		if err := c.storage.RemoveUnitDir(id); err != nil {
			c.log.Warn().Err(err).Int64("unitID", id).Msg("Failed to remove unit upload directory")
		}
	}
}
