package persistence

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalAllowlistSnapshot serializes an AllowlistSnapshot to JSON bytes.
func MarshalAllowlistSnapshot(s *AllowlistSnapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot marshal nil AllowlistSnapshot")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal AllowlistSnapshot to JSON: %w", err)
	}

	return data, nil
}

// UnmarshalAllowlistSnapshot deserializes an AllowlistSnapshot from JSON bytes.
func UnmarshalAllowlistSnapshot(data []byte) (*AllowlistSnapshot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var s AllowlistSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to AllowlistSnapshot: %w", err)
	}

	return &s, nil
}

// SortSnapshots orders snapshots by creation time, then by name. Every backend
// returns ListSnapshots in this order.
func SortSnapshots(snapshots []*AllowlistSnapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt != snapshots[j].CreatedAt {
			return snapshots[i].CreatedAt < snapshots[j].CreatedAt
		}
		return snapshots[i].Name < snapshots[j].Name
	})
}
