package main

import (
	"context"
	"log"

	"prepview/interview-engine/internal/config"
	"prepview/interview-engine/internal/repositories"
	"prepview/interview-engine/internal/services"
)

// Ingests the stored question bank into the Qdrant index so semantic
// question selection has something to search. Run after seeding or
// whenever questions are added.
func main() {
	log.Println("🚀 Starting question bank ingestion...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	questionRepo := repositories.NewQuestionRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	questionIndex, err := services.NewQuestionIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := questionIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	// Make sure the bank itself is present before indexing it.
	provider := services.NewQuestionProvider(questionRepo, geminiService, questionIndex)
	if err := provider.SeedBank(cfg.Interview.QuestionBankPath); err != nil {
		log.Fatalf("❌ Failed to seed question bank: %v", err)
	}

	count, err := questionRepo.Count()
	if err != nil {
		log.Fatalf("❌ Failed to count questions: %v", err)
	}

	questions, err := questionRepo.FindRandom(int(count))
	if err != nil {
		log.Fatalf("❌ Failed to load questions: %v", err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, q := range questions {
		log.Printf("📄 Indexing question %s (%s, %s)", q.ID, q.Category, q.Difficulty)

		embedding, err := geminiService.GenerateEmbedding(ctx, q.Prompt)
		if err != nil {
			log.Printf("❌ Failed to embed question %s: %v", q.ID, err)
			failCount++
			continue
		}

		err = questionIndex.UpsertQuestion(ctx, q.ID.String(), q.Category, q.Difficulty, q.Prompt, embedding)
		if err != nil {
			log.Printf("❌ Failed to upsert question %s: %v", q.ID, err)
			failCount++
			continue
		}

		successCount++
	}

	log.Printf("✅ Ingestion finished: %d indexed, %d failed\n", successCount, failCount)
}
