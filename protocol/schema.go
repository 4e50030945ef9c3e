package protocol

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema describes the data payload of every message type.
func Schema() map[Type]*jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	out := make(map[Type]*jsonschema.Schema, len(registry))
	for t, rt := range registry {
		out[t] = r.ReflectFromType(rt)
	}
	return out
}

// EnvelopeSchema describes the wrapper the server puts around every payload.
func EnvelopeSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	return r.ReflectFromType(reflect.TypeOf(jsonServerEnvelope{}))
}
