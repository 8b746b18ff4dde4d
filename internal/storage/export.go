package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/odelab/internal/dynamo"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

type exportFields struct {
	Run    RunMetadata   `json:"run"`
	Times  []jsonFloat   `json:"times"`
	States [][]jsonFloat `json:"states"`
}

func (d ExportData) MarshalJSON() ([]byte, error) {
	out := exportFields{Run: d.Run, Times: toJSONSlice(d.Times), States: make([][]jsonFloat, len(d.States))}
	for i, s := range d.States {
		out.States[i] = toJSONSlice(s)
	}
	return json.Marshal(out)
}

func (d *ExportData) UnmarshalJSON(b []byte) error {
	var in exportFields
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	d.Run = in.Run
	d.Times = fromJSONSlice(in.Times)
	d.States = make([][]float64, len(in.States))
	for i, s := range in.States {
		d.States[i] = fromJSONSlice(s)
	}
	return nil
}

// ExportJSON writes meta and the full trajectory as one indented JSON
// document. Non-finite values are written as strings.
func ExportJSON(w io.Writer, meta RunMetadata, tr *dynamo.Trajectory) error {
	data := ExportData{
		Run:    meta,
		Times:  tr.Times(),
		States: make([][]float64, tr.Len()),
	}
	if data.Run.Steps == 0 {
		data.Run.Steps = tr.Len() - 1
	}
	for i, s := range tr.States() {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
