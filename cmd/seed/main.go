package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type seedUser struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

type seedTask struct {
	Title         string
	Description   string
	Status        model.TaskStatus
	Priority      model.TaskPriority
	Type          model.TaskType
	DeadlineInDay int // days from now, 0 = no deadline
	AssigneeEmail string
}

var seedUsers = []seedUser{
	{"Alice", "Johnson", "alice@example.com", "password123"},
	{"Bob", "Smith", "bob@example.com", "password123"},
	{"Carol", "Nguyen", "carol@example.com", "password123"},
}

var seedTasks = []seedTask{
	{"Set up project board", "Create the initial columns and labels", model.StatusDone, model.PriorityMedium, model.TypeTask, 0, "alice@example.com"},
	{"Fix login redirect loop", "Users get stuck after a failed login attempt", model.StatusInProgress, model.PriorityUrgent, model.TypeBug, 2, "bob@example.com"},
	{"Design sprint review deck", "", model.StatusTodo, model.PriorityLow, model.TypeStory, 7, "carol@example.com"},
	{"Audit API error responses", "Check every endpoint returns the documented shape", model.StatusReview, model.PriorityHigh, model.TypeTask, 5, "alice@example.com"},
	{"Backlog grooming", "", model.StatusTodo, model.PriorityMedium, model.TypeEpic, 0, ""},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	usersByEmail, created, err := ensureUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Users seeded (%d new)", created)

	createdTasks, err := ensureTasks(ctx, taskRepo, usersByEmail)
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}
	log.Printf("Tasks seeded (%d new)", createdTasks)

	log.Println("Seed completed successfully!")
}

// ensureUsers creates the demo users that do not exist yet and returns all
// of them keyed by email.
func ensureUsers(ctx context.Context, repo repository.UserRepository) (map[string]*model.User, int, error) {
	users := make(map[string]*model.User, len(seedUsers))
	created := 0
	for _, su := range seedUsers {
		existing, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			users[su.Email] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, created, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), 10)
		if err != nil {
			return nil, created, err
		}
		user := &model.User{
			Firstname:    su.Firstname,
			Lastname:     su.Lastname,
			Email:        su.Email,
			PasswordHash: string(hash),
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, created, err
		}
		users[su.Email] = user
		created++
	}
	return users, created, nil
}

// ensureTasks creates the demo tasks. Existing tasks are left alone; the
// script only tops up an empty board.
func ensureTasks(ctx context.Context, repo repository.TaskRepository, users map[string]*model.User) (int, error) {
	existing, err := repo.Count(ctx, repository.TaskFilters{})
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		log.Printf("Found %d existing tasks, skipping task seed", existing)
		return 0, nil
	}

	created := 0
	for _, st := range seedTasks {
		task := &model.Task{
			Title:    st.Title,
			Status:   st.Status,
			Priority: st.Priority,
		}
		if st.Description != "" {
			desc := st.Description
			task.Description = &desc
		}
		taskType := st.Type
		task.Type = &taskType
		if st.DeadlineInDay > 0 {
			deadline := time.Now().AddDate(0, 0, st.DeadlineInDay)
			task.Deadline = &deadline
		}
		if st.AssigneeEmail != "" {
			if assignee, ok := users[st.AssigneeEmail]; ok {
				task.AssigneeID = &assignee.ID
			}
		}
		if err := repo.Create(ctx, task); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
