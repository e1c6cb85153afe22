package cfbs

import (
	"fmt"
	"io"

	"git.lukeshu.com/go/lowmemjson"
)

// decodeObjectFields is the shared DecodeJSON skeleton for every container:
// it walks a JSON object's key/value pairs and dispatches each value to the
// handler registered for its key, matching lowmemjson's
// decode-key-then-decode-value calling convention.
func decodeObjectFields(r io.RuneScanner, handlers map[string]func(io.RuneScanner) error) error {
	var name string
	return lowmemjson.DecodeObject(r,
		func(r io.RuneScanner) error {
			return lowmemjson.NewDecoder(r).Decode(&name)
		},
		func(r io.RuneScanner) error {
			h, ok := handlers[name]
			if !ok {
				return fmt.Errorf("cfbs: unknown field %q", name)
			}
			return h(r)
		},
	)
}
