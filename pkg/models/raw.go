package models

// Raw is a loosely-typed object as it arrives from a backing store. Only the
// normalizer interprets its keys.
type Raw = map[string]interface{}
