package models

import (
	"encoding/json"
	"strings"
)

// EntitySet holds the fields recognised in a resume. Every field is
// optional; Skills is lower-cased, de-duplicated and sorted.
type EntitySet struct {
	Name   string
	Email  string
	Phone  string
	Skills []string
}

func (e EntitySet) IsEmpty() bool {
	return e.Name == "" && e.Email == "" && e.Phone == "" && len(e.Skills) == 0
}

// Fields returns the response mapping. Keys are absent when the field was
// not found.
func (e EntitySet) Fields() map[string]string {
	fields := make(map[string]string, 4)
	if e.Name != "" {
		fields["name"] = e.Name
	}
	if e.Email != "" {
		fields["email"] = e.Email
	}
	if e.Phone != "" {
		fields["mobile_number"] = e.Phone
	}
	if len(e.Skills) > 0 {
		fields["skills"] = strings.Join(e.Skills, ", ")
	}
	return fields
}

func (e EntitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields())
}
