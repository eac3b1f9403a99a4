package db

import (
	"github.com/teamup-dev/teamup/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError maps driver constraint failures onto gorm.ErrDuplicatedKey
	// and friends so services can classify them.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Hackathon{},
		&models.Project{},
		&models.RoleRequirement{},
		&models.Task{},
		&models.TaskComment{},
		&models.Membership{},
		&models.HackathonParticipant{},
		&models.Application{},
		&models.Notification{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SetDB replaces the database handle (used by tests).
func SetDB(database *gorm.DB) {
	DB = database
}
