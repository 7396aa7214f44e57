package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lessonquiz/internal/cache"
	"lessonquiz/internal/config"
	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
	"lessonquiz/internal/repository"
)

var demoQuiz = []model.LessonQuestion{
	{
		QuestionText:  "What does `go vet` report?",
		Options:       []string{"Formatting differences", "Suspicious constructs", "Failing tests", "Outdated modules"},
		CorrectAnswer: "1",
		Explanation:   "vet examines source for constructs that are likely mistakes, such as Printf format mismatches.",
	},
	{
		QuestionText:  "Which statement about slices is true?",
		Options:       []string{"They are always copied on assignment", "They share their backing array", "Their length is fixed", "They cannot be nil"},
		CorrectAnswer: "1",
		Explanation:   "A slice header points into a backing array that other slices may share.",
	},
	{
		QuestionText:  "How do you wait for a group of goroutines?",
		Options:       []string{"time.Sleep", "runtime.Gosched", "sync.WaitGroup", "os.Exit"},
		CorrectAnswer: "2",
		Explanation:   "Add before starting each goroutine, Done when it finishes, Wait to block.",
	},
	{
		QuestionText:  "What is the zero value of an interface?",
		Options:       []string{"nil", "An empty struct", "0", "It has none"},
		CorrectAnswer: "0",
	},
}

func main() {
	lessonID := flag.String("lesson", "go-basics", "lesson id to seed")
	replace := flag.Bool("replace", false, "delete the lesson's existing questions first")
	flag.Parse()

	log := logger.NewStdout("", false)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[Seed] load config", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("[Seed] connect to MongoDB", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("[Seed] ensure indexes", err)
	}
	repo := repository.NewQuestionRepo(db)

	existing, err := repo.GetByLesson(ctx, *lessonID)
	if err != nil {
		log.Fatal("[Seed] read lesson", err)
	}
	if len(existing) > 0 {
		if !*replace {
			fmt.Printf("Lesson '%s' already has %d questions; use -replace to reseed\n", *lessonID, len(existing))
			return
		}
		for _, q := range existing {
			if err := repo.Delete(ctx, q.ID); err != nil {
				log.Fatal("[Seed] delete question", q.ID, err)
			}
		}
	}

	for i := range demoQuiz {
		q := demoQuiz[i]
		q.LessonID = *lessonID
		q.Position = i
		if err := repo.Create(ctx, &q); err != nil {
			log.Fatal("[Seed] insert question", i, err)
		}
	}

	// the service caches question lists; drop the stale one
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := cache.NewQuestionCache(rdb, cfg.QuestionCacheTTL).Invalidate(ctx, *lessonID); err != nil {
		log.Warn("[Seed] question cache not invalidated", err)
	}

	fmt.Printf("Successfully seeded %d questions for lesson '%s'\n", len(demoQuiz), *lessonID)
}
