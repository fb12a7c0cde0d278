package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"linkfolio/backend/internal/models"
	"linkfolio/backend/internal/reaction"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// Run migrations
	err = DB.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Follow{},
		&models.Post{},
		&models.Image{},
		&models.Comment{},
		&models.Reply{},
		&models.Configuration{},
		&models.Curriculum{},
		&models.CurriculumSection{},
		&models.Session{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The eight reaction tables share one row shape; each needs its own
	// uniquely named (user_id, target_id) index.
	for _, kind := range reaction.Kinds {
		for _, table := range []string{kind.LikeTable(), kind.UnlikeTable()} {
			if err := DB.Table(table).AutoMigrate(&models.ReactionRow{}); err != nil {
				log.Fatalf("Failed to migrate %s: %v", table, err)
			}
			stmt := fmt.Sprintf(
				"CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_user_target ON %s (user_id, target_id)",
				table, table,
			)
			if err := DB.Exec(stmt).Error; err != nil {
				log.Fatalf("Failed to index %s: %v", table, err)
			}
		}
	}

	log.Println("Database migrated successfully.")
}
