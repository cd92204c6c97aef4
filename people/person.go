package people

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ID is a server-assigned record identifier. The API may emit it as a JSON
// string or a JSON number; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts string, number and null identifiers.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("person id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("person id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as sent by the server.
func (id ID) String() string {
	return string(id)
}

// Person is a single record of the people collection.
type Person struct {
	ID        ID     `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IPAddress string `json:"ip_address"`

	// Extra holds any other fields the server stored or assigned, such as
	// timestamps. They round-trip through MarshalJSON.
	Extra map[string]any `json:"-"`
}

// personFields is Person without its JSON methods.
type personFields Person

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (p *Person) UnmarshalJSON(b []byte) error {
	var known personFields
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	delete(all, "id")
	for _, f := range Fields {
		delete(all, string(f))
	}
	if len(all) > 0 {
		known.Extra = all
	}

	*p = Person(known)
	return nil
}

// MarshalJSON encodes the known fields merged over Extra.
func (p Person) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(personFields(p))
	if err != nil || len(p.Extra) == 0 {
		return known, err
	}

	merged := make(map[string]any, len(p.Extra)+len(Fields)+1)
	for k, v := range p.Extra {
		merged[k] = v
	}
	var fields map[string]any
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Field names a filterable Person attribute.
type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldIPAddress Field = "ip_address"
)

// Fields lists every filterable field in wire order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldIPAddress}

// Valid reports whether f is one of the filterable fields.
func (f Field) Valid() bool {
	return slices.Contains(Fields, f)
}

// Criteria maps fields to the exact values a record must carry.
type Criteria map[Field]string

// validate rejects any key outside Fields. All unknown keys are reported,
// sorted, so the message is stable.
func (c Criteria) validate() error {
	var unknown []string
	for f := range c {
		if !f.Valid() {
			unknown = append(unknown, string(f))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return invalidArgument("unknown query field: %s", strings.Join(unknown, ", "))
}

func (c Criteria) values() url.Values {
	q := url.Values{}
	for f, v := range c {
		q.Set(string(f), v)
	}
	return q
}
