package entity

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/eve/internal/schema"
)

// Docs links a component to its documentation.
type Docs struct {
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

// SchemaResponse is the form schema of one domain/platform component.
type SchemaResponse struct {
	Domain      string      `json:"domain"`
	Platform    string      `json:"platform"`
	DisplayName string      `json:"displayName"`
	Docs        *Docs       `json:"docs,omitempty"`
	Schema      schema.Node `json:"-"`
}

// UnmarshalJSON decodes the envelope and its schema tree.
func (r *SchemaResponse) UnmarshalJSON(data []byte) error {
	type envelope SchemaResponse
	var raw struct {
		envelope
		Schema json.RawMessage `json:"schema"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = SchemaResponse(raw.envelope)
	node, err := schema.Decode(raw.Schema)
	if err != nil {
		return fmt.Errorf("schema for %s.%s: %w", r.Domain, r.Platform, err)
	}
	r.Schema = node
	return nil
}

// CoreSchemaResponse is the form schema of a core section.
type CoreSchemaResponse struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Docs        *Docs       `json:"docs,omitempty"`
	Schema      schema.Node `json:"-"`
}

// UnmarshalJSON decodes the envelope and its schema tree.
func (r *CoreSchemaResponse) UnmarshalJSON(data []byte) error {
	type envelope CoreSchemaResponse
	var raw struct {
		envelope
		Schema json.RawMessage `json:"schema"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = CoreSchemaResponse(raw.envelope)
	node, err := schema.Decode(raw.Schema)
	if err != nil {
		return fmt.Errorf("core schema %s: %w", r.Name, err)
	}
	r.Schema = node
	return nil
}

// Board is one development board in a target's catalog.
type Board struct {
	Target          string  `json:"target"`
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	ImageURL        string  `json:"imageUrl"`
	Microcontroller *string `json:"microcontroller,omitempty"`
}

// BoardCatalog lists the boards of one target (esp32 or esp8266).
type BoardCatalog struct {
	Target string  `json:"target"`
	Boards []Board `json:"boards"`
}

// BoardRef is the board a document targets, used by pin pickers.
type BoardRef struct {
	Target string
	Slug   string
}
