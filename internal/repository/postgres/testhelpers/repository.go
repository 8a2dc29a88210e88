package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPlaceRepositoryForTest creates a place repository with test database and logger
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	return postgres.NewPlaceRepository(NewDBForTest(db, logger))
}

// NewPlaceWriterForTest creates a place writer with test database and logger
func NewPlaceWriterForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceWriter {
	return postgres.NewPlaceWriter(NewDBForTest(db, logger))
}

// NewChatbotRepositoryForTest creates a chatbot repository with test database and logger
func NewChatbotRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ChatbotRepository {
	return postgres.NewChatbotRepository(NewDBForTest(db, logger))
}

// NewReferenceRepositoryForTest creates a reference repository with test database and logger
func NewReferenceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ReferenceRepository {
	return postgres.NewReferenceRepository(NewDBForTest(db, logger))
}
