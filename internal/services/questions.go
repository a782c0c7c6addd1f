package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
)

// QuestionProvider selects the ordered question list a new session is
// seeded with. Selection is semantic when the vector index is reachable
// (query built from the role and optional resume text) and falls back
// to a random draw from the stored bank.
type QuestionProvider interface {
	SelectQuestions(ctx context.Context, role, resumeText string, count int) ([]models.Question, error)
	SeedBank(path string) error
}

type questionProvider struct {
	questionRepo  repositories.QuestionRepository
	geminiService GeminiService
	questionIndex QuestionIndexService
	promptBuilder *PromptBuilder
}

func NewQuestionProvider(
	questionRepo repositories.QuestionRepository,
	geminiService GeminiService,
	questionIndex QuestionIndexService,
) QuestionProvider {
	return &questionProvider{
		questionRepo:  questionRepo,
		geminiService: geminiService,
		questionIndex: questionIndex,
		promptBuilder: NewPromptBuilder(),
	}
}

// SelectQuestions implements QuestionProvider.
func (p *questionProvider) SelectQuestions(ctx context.Context, role, resumeText string, count int) ([]models.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}

	if p.geminiService != nil && p.questionIndex != nil {
		questions, err := p.selectSemantic(ctx, role, resumeText, count)
		if err != nil {
			log.Printf("⚠️  Semantic question selection failed, falling back to random draw: %v\n", err)
		} else if len(questions) == count {
			return questions, nil
		}
	}

	questions, err := p.questionRepo.FindRandom(count)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	return questions, nil
}

func (p *questionProvider) selectSemantic(ctx context.Context, role, resumeText string, count int) ([]models.Question, error) {
	query := p.promptBuilder.BuildRetrievalQuery(role, resumeText)

	embedding, err := p.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed retrieval query: %w", err)
	}

	matches, err := p.questionIndex.SearchQuestions(ctx, embedding, count)
	if err != nil {
		return nil, fmt.Errorf("failed to search question index: %w", err)
	}
	if len(matches) < count {
		return nil, fmt.Errorf("index returned %d questions, need %d", len(matches), count)
	}

	ids := make([]uuid.UUID, 0, count)
	for _, match := range matches[:count] {
		id, err := uuid.Parse(match.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("invalid question id in index: %w", err)
		}
		ids = append(ids, id)
	}

	return p.questionRepo.FindByIDs(ids)
}

// SeedBank loads the YAML question bank into the database on first run.
// An already-populated bank is left alone.
func (p *questionProvider) SeedBank(path string) error {
	count, err := p.questionRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	bank, err := LoadQuestionBank(path)
	if err != nil {
		return err
	}

	for i := range bank {
		if err := p.questionRepo.Create(&bank[i]); err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded question bank with %d questions\n", len(bank))
	return nil
}

type questionBankFile struct {
	Questions []struct {
		Prompt     string `yaml:"prompt"`
		Category   string `yaml:"category"`
		Difficulty string `yaml:"difficulty"`
	} `yaml:"questions"`
}

// LoadQuestionBank parses a YAML question bank and validates every
// entry's category and difficulty.
func LoadQuestionBank(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var file questionBankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s contains no questions", path)
	}

	questions := make([]models.Question, 0, len(file.Questions))
	for i, entry := range file.Questions {
		if entry.Prompt == "" {
			return nil, fmt.Errorf("question %d: prompt is empty", i+1)
		}
		if !engine.Category(entry.Category).Valid() {
			return nil, fmt.Errorf("question %d: invalid category %q", i+1, entry.Category)
		}
		if !engine.Difficulty(entry.Difficulty).Valid() {
			return nil, fmt.Errorf("question %d: invalid difficulty %q", i+1, entry.Difficulty)
		}

		questions = append(questions, models.Question{
			ID:         uuid.New(),
			Prompt:     entry.Prompt,
			Category:   entry.Category,
			Difficulty: entry.Difficulty,
		})
	}

	return questions, nil
}
