package llm

import (
	"sync"

	"github.com/futig/form-builder/internal/entity"
	"github.com/invopop/jsonschema"
)

// generatedFormSchema describes the {schema, uiSchema} envelope for providers
// that accept a response JSON schema.
var generatedFormSchema = sync.OnceValue(func() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&entity.GeneratedForm{})
	s.Version = ""
	s.ID = ""
	return s
})
