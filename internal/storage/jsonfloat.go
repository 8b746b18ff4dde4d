package storage

import (
	"encoding/json"
	"math"
	"strconv"
)

// jsonFloat writes NaN and ±Inf as the strings "NaN", "+Inf" and "-Inf",
// which encoding/json rejects as numbers. Diverged runs carry them in
// their metrics and states.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = jsonFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

func toJSONMap(m map[string]float64) map[string]jsonFloat {
	if m == nil {
		return nil
	}
	out := make(map[string]jsonFloat, len(m))
	for k, v := range m {
		out[k] = jsonFloat(v)
	}
	return out
}

func fromJSONMap(m map[string]jsonFloat) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}

func toJSONSlice(s []float64) []jsonFloat {
	out := make([]jsonFloat, len(s))
	for i, v := range s {
		out[i] = jsonFloat(v)
	}
	return out
}

func fromJSONSlice(s []jsonFloat) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

type metadataFields RunMetadata

// MarshalJSON keeps non-finite parameters and metrics encodable.
func (m RunMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		metadataFields
		Params  map[string]jsonFloat `json:"params,omitempty"`
		Metrics map[string]jsonFloat `json:"metrics,omitempty"`
	}{metadataFields(m), toJSONMap(m.Params), toJSONMap(m.Metrics)})
}

func (m *RunMetadata) UnmarshalJSON(b []byte) error {
	aux := struct {
		*metadataFields
		Params  map[string]jsonFloat `json:"params,omitempty"`
		Metrics map[string]jsonFloat `json:"metrics,omitempty"`
	}{metadataFields: (*metadataFields)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.Params = fromJSONMap(aux.Params)
	m.Metrics = fromJSONMap(aux.Metrics)
	return nil
}
