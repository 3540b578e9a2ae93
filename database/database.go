package database

import (
	"context"
	"fmt"

	"github.com/diyhub/backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db               *gorm.DB
	userRepo         *UserRepo
	projectRepo      *ProjectRepo
	projectTagRepo   *ProjectTagRepo
	forumRepo        *ForumRepo
	commentRepo      *CommentRepo
	reactionRepo     *ReactionRepo
	ratingRepo       *RatingRepo
	consultationRepo *ConsultationRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		userRepo:         NewUserRepo(db),
		projectRepo:      NewProjectRepo(db),
		projectTagRepo:   NewProjectTagRepo(db),
		forumRepo:        NewForumRepo(db),
		commentRepo:      NewCommentRepo(db),
		reactionRepo:     NewReactionRepo(db),
		ratingRepo:       NewRatingRepo(db),
		consultationRepo: NewConsultationRepo(db),
	}
}

// GetDB returns the shared connection
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTagRepo() *ProjectTagRepo {
	return d.projectTagRepo
}

func (d Database) ForumRepo() *ForumRepo {
	return d.forumRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) ReactionRepo() *ReactionRepo {
	return d.reactionRepo
}

func (d Database) RatingRepo() *RatingRepo {
	return d.ratingRepo
}

func (d Database) ConsultationRepo() *ConsultationRepo {
	return d.consultationRepo
}

// Migrate creates or updates every table, including the unique indexes the reaction and
// rating upserts rely on.
func (d Database) Migrate() error {
	if err := d.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks that a connection can be borrowed from the pool.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
