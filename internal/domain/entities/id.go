package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID identifies a remote resource. The API uses integer keys for meetings and
// their sub-resources and GUID strings for users; ID accepts both and writes
// numeric values back as JSON numbers.
type ID string

// String returns the raw identifier
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts a JSON string, number or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes canonical integers as numbers and everything else as strings
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) isNumeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}
