package service

import (
	"github.com/rs/zerolog"

	"github.com/i2i/project-management/internal/core/domain"
)

// failStore logs the underlying persistence error and returns the
// generic store-failure sentinel. Callers never see the raw cause.
func failStore(log zerolog.Logger, err error, op string) error {
	log.Error().Err(err).Str("op", op).Msg("store operation failed")
	return domain.ErrStoreFailure
}
