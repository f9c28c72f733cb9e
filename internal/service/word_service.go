package service

import (
	"fmt"
	"log"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/validation"
)

// WordService serves the level-graded word catalog and seeds the
// built-in list on first start
type WordService struct {
	db *database.DB
}

// NewWordService creates a new word service
func NewWordService(db *database.DB) *WordService {
	return &WordService{db: db}
}

// Seed inserts the built-in catalog when the words table is empty.
// Safe to call on every startup.
func (s *WordService) Seed() error {
	count, err := repository.NewWordRepository(s.db).Count()
	if err != nil {
		return fmt.Errorf("failed to count words: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := repository.NewWordRepository(tx)
	for i := range seedWords {
		word := seedWords[i]
		if err := repo.Insert(&word); err != nil {
			return fmt.Errorf("failed to seed word %q: %w", word.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	log.Printf("Seeded word catalog with %d words", len(seedWords))
	return nil
}

// GetByLevel returns the catalog slice for one level
func (s *WordService) GetByLevel(level int) ([]models.Word, error) {
	if level < 1 || level > maxLevel {
		return nil, validation.ValidationError{Field: "level", Message: fmt.Sprintf("level must be between 1 and %d", maxLevel)}
	}
	words, err := repository.NewWordRepository(s.db).GetByLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// seedWords is the built-in catalog: level 1 is simple CVC words,
// level 2 adds digraphs, level 3 adds consonant blends
var seedWords = []models.Word{
	// Level 1
	{Word: "cat", Level: 1, Category: "animals", Hint: "A small pet that says meow"},
	{Word: "dog", Level: 1, Category: "animals", Hint: "A pet that barks"},
	{Word: "pig", Level: 1, Category: "animals", Hint: "A farm animal that says oink"},
	{Word: "hen", Level: 1, Category: "animals", Hint: "A farm bird that lays eggs"},
	{Word: "sun", Level: 1, Category: "nature", Hint: "It shines in the sky during the day"},
	{Word: "bed", Level: 1, Category: "home", Hint: "You sleep in it at night"},
	{Word: "cup", Level: 1, Category: "home", Hint: "You drink from it"},
	{Word: "hat", Level: 1, Category: "clothes", Hint: "You wear it on your head"},
	{Word: "pen", Level: 1, Category: "school", Hint: "You write with it"},
	{Word: "bag", Level: 1, Category: "school", Hint: "You carry your books in it"},
	{Word: "map", Level: 1, Category: "school", Hint: "It shows you where places are"},
	{Word: "bus", Level: 1, Category: "transport", Hint: "A big vehicle that carries many people"},
	{Word: "box", Level: 1, Category: "objects", Hint: "You keep things inside it"},
	{Word: "net", Level: 1, Category: "objects", Hint: "You catch fish with it"},
	{Word: "leg", Level: 1, Category: "body", Hint: "You stand on two of these"},

	// Level 2
	{Word: "fish", Level: 2, Category: "animals", Hint: "It swims in water"},
	{Word: "duck", Level: 2, Category: "animals", Hint: "A bird that swims and quacks"},
	{Word: "frog", Level: 2, Category: "animals", Hint: "A green animal that jumps"},
	{Word: "ship", Level: 2, Category: "transport", Hint: "A big boat"},
	{Word: "milk", Level: 2, Category: "food", Hint: "A white drink from cows"},
	{Word: "chip", Level: 2, Category: "food", Hint: "A thin fried piece of potato"},
	{Word: "hand", Level: 2, Category: "body", Hint: "It has five fingers"},
	{Word: "jump", Level: 2, Category: "actions", Hint: "To push yourself up into the air"},
	{Word: "ring", Level: 2, Category: "objects", Hint: "You wear it on your finger"},
	{Word: "sock", Level: 2, Category: "clothes", Hint: "You wear it on your foot before a shoe"},
	{Word: "tree", Level: 2, Category: "nature", Hint: "A tall plant with leaves"},
	{Word: "rain", Level: 2, Category: "nature", Hint: "Water that falls from clouds"},
	{Word: "moon", Level: 2, Category: "nature", Hint: "It shines in the sky at night"},
	{Word: "shop", Level: 2, Category: "places", Hint: "A place where you buy things"},
	{Word: "bath", Level: 2, Category: "home", Hint: "You wash your whole body in it"},

	// Level 3
	{Word: "bread", Level: 3, Category: "food", Hint: "You make sandwiches with it"},
	{Word: "grape", Level: 3, Category: "food", Hint: "A small round fruit that grows in bunches"},
	{Word: "crisp", Level: 3, Category: "food", Hint: "A thin, crunchy potato snack"},
	{Word: "snake", Level: 3, Category: "animals", Hint: "A long animal with no legs"},
	{Word: "plant", Level: 3, Category: "nature", Hint: "It grows in soil"},
	{Word: "cloud", Level: 3, Category: "nature", Hint: "White and fluffy in the sky"},
	{Word: "green", Level: 3, Category: "colours", Hint: "The colour of grass"},
	{Word: "train", Level: 3, Category: "transport", Hint: "It runs on rails"},
	{Word: "house", Level: 3, Category: "places", Hint: "A building where people live"},
	{Word: "chair", Level: 3, Category: "home", Hint: "You sit on it"},
	{Word: "smile", Level: 3, Category: "actions", Hint: "A happy face makes this"},
	{Word: "sleep", Level: 3, Category: "actions", Hint: "What you do at night in bed"},
	{Word: "drink", Level: 3, Category: "actions", Hint: "What you do with water when thirsty"},
	{Word: "stamp", Level: 3, Category: "objects", Hint: "You stick it on a letter"},
	{Word: "brush", Level: 3, Category: "objects", Hint: "You use it for your hair or teeth"},
}
