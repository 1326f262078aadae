package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed header.schema.json
var headerSchema string

var headerSchemaLoader = gojsonschema.NewStringLoader(headerSchema)

// ErrInvalidDocument is wrapped by Validate when the document does not
// match the header schema.
var ErrInvalidDocument = errors.New("invalid header document")

// Validate checks a raw header document against the header schema.
func Validate(document []byte) error {
	result, err := gojsonschema.Validate(headerSchemaLoader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}
