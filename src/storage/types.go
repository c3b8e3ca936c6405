package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Transcript is a saved conversation.
type Transcript struct {
	ID        string          `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Endpoint  string          `json:"endpoint" db:"endpoint"`
	Backend   string          `json:"backend" db:"backend"`
	Model     string          `json:"model" db:"model"`
	ToolNames JSONStringArray `json:"tool_names" db:"tool_names"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// TranscriptSummary is a Transcript with its turn count, as listed.
type TranscriptSummary struct {
	Transcript
	TurnCount int `json:"turn_count" db:"turn_count"`
}

// Turn is one saved exchange.
type Turn struct {
	ID            string    `json:"id" db:"id"`
	TranscriptID  string    `json:"transcript_id" db:"transcript_id"`
	Seq           int       `json:"seq" db:"seq"`
	UserText      string    `json:"user_text" db:"user_text"`
	AssistantText string    `json:"assistant_text" db:"assistant_text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// JSONStringArray is a custom type for handling JSON arrays stored as strings in the database
type JSONStringArray []string

// Scan implements the sql.Scanner interface for JSONStringArray
func (j *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*j = []string{}
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" || v == "[]" {
			*j = []string{}
			return nil
		}
		return json.Unmarshal([]byte(v), j)
	case []byte:
		if len(v) == 0 || string(v) == "[]" {
			*j = []string{}
			return nil
		}
		return json.Unmarshal(v, j)
	default:
		return fmt.Errorf("cannot scan type %T into JSONStringArray", value)
	}
}

// Value implements the driver.Valuer interface for JSONStringArray
func (j JSONStringArray) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
