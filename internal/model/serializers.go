package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Custom serializers for the JSON columns on Video

// TagMap maps a tag name to its score. Insertion order is irrelevant.
type TagMap map[string]int

// Value implements the driver.Valuer interface.
func (t TagMap) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "{}", nil
	}

	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tags, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (t *TagMap) Scan(value interface{}) error {
	if value == nil {
		*t = TagMap{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("failed to scan TagMap, %v", value)
		}

		b = []byte(s)
	}

	if len(b) == 0 {
		*t = TagMap{}
		return nil
	}

	return json.Unmarshal(b, t)
}

// Asset is one transcoded variant of a video.
type Asset struct {
	// Resolution as {width}x{height}, e.g. 1280x720
	Resolution string `json:"res"`
	Extension  string `json:"ext"`
	// Encoded size class, e.g. 720p
	SizeClass string `json:"def"`
}

// AssetList is the ordered sequence of transcoded variants.
type AssetList []Asset

// Value implements the driver.Valuer interface.
func (a AssetList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize assets, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (a *AssetList) Scan(value interface{}) error {
	if value == nil {
		*a = AssetList{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("failed to scan AssetList, %v", value)
		}

		b = []byte(s)
	}

	if len(b) == 0 {
		*a = AssetList{}
		return nil
	}

	return json.Unmarshal(b, a)
}
