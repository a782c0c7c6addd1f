package engine

type Category string

const (
	CategoryBehavioral Category = "behavioral"
	CategoryTechnical  Category = "technical"
	CategoryMixed      Category = "mixed"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBehavioral, CategoryTechnical, CategoryMixed:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is immutable once loaded into a session.
type Question struct {
	ID         string
	Prompt     string
	Category   Category
	Difficulty Difficulty
}
