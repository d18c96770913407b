package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/abhisek/luminar/internal/intelligence"
)

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the opaque auth token.
type LoginResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// User is the identity returned by login and profile.
type User struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
}

// Intelligences is the wire form of the eight dimension scores.
type Intelligences struct {
	Linguistic          int `json:"linguistic"`
	LogicalMathematical int `json:"logical_mathematical"`
	Spatial             int `json:"spatial"`
	Musical             int `json:"musical"`
	BodilyKinesthetic   int `json:"bodily_kinesthetic"`
	Naturalistic        int `json:"naturalistic"`
	Interpersonal       int `json:"interpersonal"`
	Intrapersonal       int `json:"intrapersonal"`
}

// Scores converts to the dimension-indexed form.
func (i Intelligences) Scores() intelligence.Scores {
	return intelligence.Scores{
		intelligence.Linguistic:          i.Linguistic,
		intelligence.LogicalMathematical: i.LogicalMathematical,
		intelligence.Spatial:             i.Spatial,
		intelligence.Musical:             i.Musical,
		intelligence.BodilyKinesthetic:   i.BodilyKinesthetic,
		intelligence.Naturalistic:        i.Naturalistic,
		intelligence.Interpersonal:       i.Interpersonal,
		intelligence.Intrapersonal:       i.Intrapersonal,
	}
}

// Descriptions is the wire form of the per-dimension descriptive texts.
type Descriptions struct {
	Linguistic          string `json:"linguistic"`
	LogicalMathematical string `json:"logical_mathematical"`
	Spatial             string `json:"spatial"`
	Musical             string `json:"musical"`
	BodilyKinesthetic   string `json:"bodily_kinesthetic"`
	Naturalistic        string `json:"naturalistic"`
	Interpersonal       string `json:"interpersonal"`
	Intrapersonal       string `json:"intrapersonal"`
}

// Texts converts to the dimension-indexed form.
func (d Descriptions) Texts() intelligence.Descriptions {
	return intelligence.Descriptions{
		intelligence.Linguistic:          d.Linguistic,
		intelligence.LogicalMathematical: d.LogicalMathematical,
		intelligence.Spatial:             d.Spatial,
		intelligence.Musical:             d.Musical,
		intelligence.BodilyKinesthetic:   d.BodilyKinesthetic,
		intelligence.Naturalistic:        d.Naturalistic,
		intelligence.Interpersonal:       d.Interpersonal,
		intelligence.Intrapersonal:       d.Intrapersonal,
	}
}

// SubmitTestRequest is the body of POST /users/test. Answers are sent in
// question order.
type SubmitTestRequest struct {
	Respostas []int `json:"respostas"`
}

// TestResult is the scored submission. Descriptions is nil when the
// server sent none.
type TestResult struct {
	Intelligences Intelligences `json:"intelligences"`
	Descriptions  *Descriptions `json:"descriptions,omitempty"`
}

// Profile is returned by GET /users/profile.
type Profile struct {
	User             User             `json:"user"`
	IntelligenceTest IntelligenceTest `json:"intelligence_test"`
	AreaSuggestions  []AreaSuggestion `json:"area_suggestions"`
}

// IntelligenceTest is the most recent scored test. TestDate is ISO-8601.
type IntelligenceTest struct {
	TestDate      string        `json:"test_date"`
	Intelligences Intelligences `json:"intelligences"`
}

// AreaSuggestion is a ranked career area.
type AreaSuggestion struct {
	Area              string      `json:"area"`
	SampleProfessions []string    `json:"sample_professions"`
	Probability       Probability `json:"probability"`
}

// Probability is surfaced as text. The server may send it as a JSON string
// or a number; numbers keep their literal form.
type Probability string

func (p *Probability) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Probability(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("probability: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("probability: %w", err)
	}
	*p = Probability(n.String())
	return nil
}
