// Package docs registers the API document with swag so that echo-swagger can
// serve it at /swagger/doc.json.
package docs

import (
	"encoding/json"
	"sync"

	"donation/internal/generated/servers"

	"github.com/swaggo/swag"
)

// openAPIDoc serves the embedded OpenAPI document as JSON.
type openAPIDoc struct {
	once sync.Once
	doc  string
}

func (d *openAPIDoc) ReadDoc() string {
	d.once.Do(func() {
		spec, err := servers.GetSwagger()
		if err != nil {
			d.doc = "{}"
			return
		}
		raw, err := json.Marshal(spec)
		if err != nil {
			d.doc = "{}"
			return
		}
		d.doc = string(raw)
	})
	return d.doc
}

func init() {
	swag.Register(swag.Name, &openAPIDoc{})
}
