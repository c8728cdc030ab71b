package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"salonbook-backend/utils"
)

// Price is an amount in whole currency units. It decodes from either a
// JSON number or a formatted string such as "1 500 Ft".
type Price int

func (p *Price) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*p = Price(utils.ParsePrice(raw))
	return nil
}

// ServiceSnapshot is a service as it was when the booking was submitted.
type ServiceSnapshot struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Price    Price  `json:"price"`
	Duration int    `json:"duration"`
}

// ServiceSnapshots is stored as a jsonb column.
type ServiceSnapshots []ServiceSnapshot

func (s ServiceSnapshots) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *ServiceSnapshots) Scan(value interface{}) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, s)
}

// StringList is stored as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return []byte("null"), nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, errors.New("type assertion to []byte failed")
}
