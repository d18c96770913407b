package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds the response schemas built so far, keyed by Schema.Name.
var compiled struct {
	mu  sync.Mutex
	set map[string]*jsonschema.Schema
}

// checkShape returns an *ErrDecoding when body does not satisfy s.
// A nil s accepts any body.
func checkShape(s *Schema, body []byte) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &ErrDecoding{Err: fmt.Errorf("response is not JSON: %w", err)}
	}
	sch, err := s.compile()
	if err != nil {
		return &ErrDecoding{Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrDecoding{Err: fmt.Errorf("%s response: %w", s.Name, err)}
	}
	return nil
}

// compile builds the schema on first use and reuses it afterwards.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	compiled.mu.Lock()
	defer compiled.mu.Unlock()

	if sch, ok := compiled.set[s.Name]; ok {
		return sch, nil
	}

	// Definitions are Go maps; the compiler only takes the generic values
	// jsonschema.UnmarshalJSON produces.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode %s schema: %w", s.Name, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s schema: %w", s.Name, err)
	}

	loc := "mem://luminar/responses/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(loc, def); err != nil {
		return nil, fmt.Errorf("load %s schema: %w", s.Name, err)
	}
	sch, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", s.Name, err)
	}

	if compiled.set == nil {
		compiled.set = make(map[string]*jsonschema.Schema)
	}
	compiled.set[s.Name] = sch
	return sch, nil
}
