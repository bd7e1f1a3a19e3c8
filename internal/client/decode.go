package client

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/kjstillabower/weather-snapshot/internal/models"
)

var (
	errEmptyPayload = errors.New("empty payload")
	errNotObject    = errors.New("payload is not a JSON object")
	errWeatherEntry  = errors.New("weather entry is not an object")
)

// snapshotJSON matches object keys exactly; encoding/json would also accept "Name" for "name".
var snapshotJSON = jsoniter.Config{CaseSensitive: true}.Froze()

// DecodeError reports a payload that is not JSON or has a field of the wrong type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decoder error: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeSnapshot maps a current-weather payload onto models.Snapshot.
// Missing keys and null values leave the corresponding field nil. The
// payload itself and every weather entry must be JSON objects.
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Snapshot{}, &DecodeError{Err: errEmptyPayload}
	}
	var snap models.Snapshot
	if err := snapshotJSON.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, &DecodeError{Err: err}
	}
	if err := checkShape(data); err != nil {
		return models.Snapshot{}, &DecodeError{Err: err}
	}
	return snap, nil
}

// checkShape rejects payloads that Unmarshal accepts as zero values: a
// top-level null and null entries in the weather list.
func checkShape(data []byte) error {
	root := snapshotJSON.Get(data)
	if root.ValueType() != jsoniter.ObjectValue {
		return errNotObject
	}
	weather := root.Get("weather")
	if weather.ValueType() != jsoniter.ArrayValue {
		return nil
	}
	for i := 0; i < weather.Size(); i++ {
		if weather.Get(i).ValueType() != jsoniter.ObjectValue {
			return fmt.Errorf("%w: index %d", errWeatherEntry, i)
		}
	}
	return nil
}
