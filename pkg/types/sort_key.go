package types

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering of the final result set.
type SortKey int

const (
	SortNone SortKey = iota
	SortName
	SortExtension
	SortDate
	SortSize
)

var sortKeyNames = map[SortKey]string{
	SortNone:      "none",
	SortName:      "name",
	SortExtension: "extension",
	SortDate:      "date",
	SortSize:      "size",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey parses a sort key name case-insensitively. The empty string
// means SortNone; "ext" is accepted for extension.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortName, nil
	case "extension", "ext":
		return SortExtension, nil
	case "date":
		return SortDate, nil
	case "size":
		return SortSize, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q (want none, name, extension, date or size)", s)
}

// Set implements pflag.Value.
func (k *SortKey) Set(s string) error {
	parsed, err := ParseSortKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *SortKey) Type() string {
	return "sortKey"
}

// MarshalText implements encoding.TextMarshaler.
func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SortKey) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}
