package model

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Entity names a request body shape with its own JSON schema.
type Entity string

const (
	PersonalInfo Entity = "personal_info"
	Skill        Entity = "skill"
	Education    Entity = "education"
	Experience   Entity = "experience"
	Project      Entity = "project"
	Technology   Entity = "technology"
	Contact      Entity = "contact"
)

// Label is the entity name as it reads in client messages.
func (e Entity) Label() string {
	return strings.ReplaceAll(string(e), "_", " ")
}

// rootContext is how gojsonschema names the document itself.
const rootContext = "(root)"

var entities = []Entity{PersonalInfo, Skill, Education, Experience, Project, Technology, Contact}

// ErrMalformed is returned when a body is not JSON at all.
var ErrMalformed = errors.New("invalid payload")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every schema violation found in a request body.
type ValidationError struct {
	Entity Entity
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			msgs = append(msgs, fe.Message)
			continue
		}
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(msgs, "; "))
}

// Validator holds the compiled schemas. The partial variant of each schema
// is the full one with "required" dropped, which is what PATCH bodies are
// checked against.
type Validator struct {
	full    map[Entity]*gojsonschema.Schema
	partial map[Entity]*gojsonschema.Schema
}

var registerFormats sync.Once

// emailFormat accepts a bare address with a dotted domain. The stock
// checker also lets through display names and single label hosts.
type emailFormat struct{}

func (emailFormat) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok {
		return true
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	domain := s[strings.LastIndex(s, "@")+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func NewValidator() (*Validator, error) {
	registerFormats.Do(func() {
		gojsonschema.FormatCheckers.Add("email", emailFormat{})
	})
	v := &Validator{
		full:    make(map[Entity]*gojsonschema.Schema, len(entities)),
		partial: make(map[Entity]*gojsonschema.Schema, len(entities)),
	}
	for _, e := range entities {
		raw, err := schemaFS.ReadFile("schema/" + string(e) + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("read %s schema: %w", e, err)
		}
		full, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", e, err)
		}
		v.full[e] = full

		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s schema: %w", e, err)
		}
		delete(doc, "required")
		partial, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("compile partial %s schema: %w", e, err)
		}
		v.partial[e] = partial
	}
	return v, nil
}

// Validate checks a complete body (POST, PUT).
func (v *Validator) Validate(e Entity, body []byte) error {
	return validate(e, v.full[e], body)
}

// ValidatePartial checks a PATCH body: every field is optional but those
// present must be well formed.
func (v *Validator) ValidatePartial(e Entity, body []byte) error {
	return validate(e, v.partial[e], body)
}

func validate(e Entity, schema *gojsonschema.Schema, body []byte) error {
	if schema == nil {
		return fmt.Errorf("no schema for %s", e)
	}
	if !json.Valid(body) {
		return ErrMalformed
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validate %s: %w", e, err)
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{Entity: e}
	for _, re := range res.Errors() {
		verr.Errors = append(verr.Errors, FieldError{Field: fieldOf(re), Message: re.Description()})
	}
	sort.SliceStable(verr.Errors, func(i, j int) bool { return verr.Errors[i].Field < verr.Errors[j].Field })
	return verr
}

// fieldOf names the offending property. Missing properties are reported
// against their parent, so the name comes from the error details instead.
func fieldOf(re gojsonschema.ResultError) string {
	field := re.Field()
	if re.Type() == "required" {
		if p, ok := re.Details()["property"].(string); ok {
			if field == rootContext {
				return p
			}
			return field + "." + p
		}
	}
	if field == rootContext {
		return ""
	}
	return field
}
