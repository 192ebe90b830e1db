package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is an ordered sequence of strings persisted as a JSON column.
// Genre and platform values are stored this way, preserving the order they
// were submitted in.
type StringList []string

// Value implements driver.Valuer by delegating to datatypes.JSON
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b).Value()
}

// Scan implements sql.Scanner by delegating to datatypes.JSON
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var j datatypes.JSON
	if err := j.Scan(value); err != nil {
		return err
	}
	if len(j) == 0 {
		*s = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	*s = StringList(out)
	return nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
