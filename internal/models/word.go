package models

// Word is a catalog entry the game asks the learner to build. Levels
// grade difficulty from CVC words upward.
type Word struct {
	ID       int64  `json:"id"`
	Word     string `json:"word"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	Hint     string `json:"hint"`
}
