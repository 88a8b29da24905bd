package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID непрозрачный идентификатор сущности бэкенда.
// В JSON приходит либо числом, либо строкой.
type ID string

// UnmarshalJSON принимает как числовые, так и строковые идентификаторы
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON отдаёт числовые идентификаторы числом, остальные строкой
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// IsNumeric проверяет, что идентификатор целое число в канонической записи.
// "007" и "+5" числами не считаются.
func (id ID) IsNumeric() bool {
	if id == "" {
		return false
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// IsZero сообщает, что идентификатор не задан
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// FirstID возвращает первый непустой идентификатор.
// Бэкенд отдаёт то roomId/postId, то id.
func FirstID(ids ...ID) ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}
