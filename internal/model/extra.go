package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds the members of a JSON object that the Go types do not model.
// They are kept so a foreign link re-encodes without losing anything.
type Extra map[string]json.RawMessage

// jsonKeys lists the JSON member names of the fields of struct type t
func jsonKeys(t reflect.Type) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}

// splitExtra returns the members of the JSON object data not named in known
func splitExtra(data []byte, known []string) (Extra, error) {
	var all Extra
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeExtra adds extra to the JSON object data. Modelled members win.
func mergeExtra(data []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := all[k]; !ok {
			all[k] = v
		}
	}
	return json.Marshal(all)
}
