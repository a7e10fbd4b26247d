package service

import (
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/service/seed"
	"gorm.io/gorm"
)

// Service exposes dashboard operations to handlers.
type Service struct {
	logic  *Logic
	seeder *seed.Seeder
}

// NewService builds a Service. seeder may be nil, which disables Reseed.
func NewService(dbConn *gorm.DB, seeder *seed.Seeder) *Service {
	return &Service{
		logic:  NewLogic(dbConn),
		seeder: seeder,
	}
}

// notFound maps gorm.ErrRecordNotFound to target and passes other errors through.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func staleAsConflict(err error) error {
	if errors.Is(err, db.ErrStaleVersion) {
		return ErrConflict
	}
	return err
}
