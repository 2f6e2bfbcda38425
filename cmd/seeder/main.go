// ============================================================================
// cmd/seeder/main.go
// Database seeder: admin account, indexes and optional demo students
// ============================================================================

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"resultportal/internal/auth"
	"resultportal/internal/catalog"
	"resultportal/internal/logging"
	"resultportal/internal/records"
	"resultportal/internal/shared"
	"resultportal/internal/students"
)

// demoStudent is one seeded record with its subject scores.
type demoStudent struct {
	seatNumber  string
	fullName    string
	dateOfBirth string
	scores      map[string]string
}

var demoStudents = []demoStudent{
	{
		seatNumber:  "1BM20CS001",
		fullName:    "John Doe",
		dateOfBirth: "2002-05-15",
		scores: map[string]string{
			catalog.CodeDSA:  "85",
			catalog.CodeADA:  "78",
			catalog.CodeDBMS: "92",
			catalog.CodeJAVA: "88",
			catalog.CodeOS:   "81",
		},
	},
	{
		seatNumber:  "1BM20CS002",
		fullName:    "Jane Smith",
		dateOfBirth: "2002-03-22",
		scores: map[string]string{
			catalog.CodeDSA:  "90",
			catalog.CodeADA:  "85",
			catalog.CodeDBMS: "89",
			catalog.CodeJAVA: "94",
			catalog.CodeOS:   "87",
		},
	},
}

func main() {
	reset := flag.Bool("reset", false, "drop existing collections before seeding")
	demo := flag.Bool("demo", false, "seed the demo students")
	flag.Parse()

	// 1. Load configuration
	_ = shared.LoadEnv("")
	config, err := shared.LoadServiceConfig("resultportal-seeder")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(config.LogLevel, config.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// The admin credential comes from the environment, never from source.
	adminUsername := shared.GetEnv("ADMIN_USERNAME", "admin")
	adminPassword := shared.GetEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		logger.Fatal("ADMIN_PASSWORD environment variable is required")
	}

	// 2. Connect to MongoDB
	client, db, err := shared.ConnectMongoDB(&config.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = shared.DisconnectMongoDB(client) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 3. Optionally wipe existing data
	if *reset {
		for _, name := range []string{"students", "marks", "admins", "sessions"} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				logger.Fatal("failed to drop collection", zap.String("collection", name), zap.Error(err))
			}
		}
		logger.Info("dropped existing collections")
	}

	// 4. Ensure indexes
	repo := records.NewMongoRepository(client, db, logger)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	// 5. Create the admin account
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		logger.Fatal("failed to hash admin password", zap.Error(err))
	}
	admin := &shared.AdminProfile{
		ID:           shared.GenerateID("adm"),
		Username:     adminUsername,
		PasswordHash: hash,
		FullName:     "Portal Administrator",
		CreatedAt:    time.Now(),
	}
	if err := repo.InsertAdmin(ctx, admin); err != nil {
		if errors.Is(err, shared.ErrValidation) {
			logger.Info("admin account already exists, skipping", zap.String("username", adminUsername))
		} else {
			logger.Fatal("failed to create admin", zap.Error(err))
		}
	} else {
		logger.Info("admin account created", zap.String("username", adminUsername))
	}

	// 6. Optionally seed the demo students
	if *demo {
		svc := students.NewService(repo, logger)
		for _, d := range demoStudents {
			student, err := svc.Create(ctx, d.seatNumber, d.fullName, d.dateOfBirth)
			if err != nil {
				if errors.Is(err, shared.ErrDuplicateSeatNumber) {
					logger.Info("demo student already exists, skipping", zap.String("seat_number", d.seatNumber))
					continue
				}
				logger.Fatal("failed to create demo student", zap.Error(err))
			}
			for code, score := range d.scores {
				if _, err := svc.SetMark(ctx, student.ID, code, score, "seeder"); err != nil {
					logger.Fatal("failed to record demo mark", zap.Error(err))
				}
			}
			logger.Info("demo student seeded", zap.String("seat_number", d.seatNumber))
		}
	}

	logger.Info("seeding complete")
}
