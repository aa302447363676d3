package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON document in a text or
// jsonb column.
type StringSlice []string

// Value implements the driver.Valuer interface.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// JSONDocument stores an arbitrary JSON payload as raw bytes. Quiz
// question snapshots and grading feedback go through this type.
type JSONDocument []byte

// Value implements the driver.Valuer interface.
func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "null", nil
	}
	return string(d), nil
}

// Scan implements the sql.Scanner interface.
func (d *JSONDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*d = append((*d)[:0], v...)
		return nil
	case string:
		*d = JSONDocument(v)
		return nil
	default:
		return errors.New("JSONDocument Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
}

// Quiz is the database row for a generated quiz snapshot.
type Quiz struct {
	ID             string       `db:"id"`
	UserID         string       `db:"user_id"`
	Grade          int          `db:"grade"`
	Subject        string       `db:"subject"`
	TotalQuestions int          `db:"total_questions"`
	MaxScore       float64      `db:"max_score"`
	EasyCount      int          `db:"easy_count"`
	MediumCount    int          `db:"medium_count"`
	HardCount      int          `db:"hard_count"`
	EasyPoints     float64      `db:"easy_points"`
	MediumPoints   float64      `db:"medium_points"`
	HardPoints     float64      `db:"hard_points"`
	Questions      JSONDocument `db:"questions"`
	CreatedAt      time.Time    `db:"created_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Submission is the database row for a graded answer set. Subject and
// Grade are joined from the quizzes table on reads.
type Submission struct {
	ID          string       `db:"id"`
	QuizID      string       `db:"quiz_id"`
	UserID      string       `db:"user_id"`
	TotalScore  float64      `db:"total_score"`
	MaxScore    float64      `db:"max_score"`
	Answers     StringSlice  `db:"answers"`
	Feedback    JSONDocument `db:"feedback"`
	Suggestions StringSlice  `db:"suggestions"`
	Metrics     JSONDocument `db:"metrics"`
	CreatedAt   time.Time    `db:"created_at"`

	Subject string `db:"subject"`
	Grade   int    `db:"grade"`
}

func (Submission) TableName() string {
	return "submissions"
}
