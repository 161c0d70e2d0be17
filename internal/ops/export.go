// Package ops implements the full-dump export/import surface. The dump is
// a single JSON document built from the entities' own serialized forms, so
// anything the store can hold round-trips losslessly.
package ops

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gtdone/internal/model"
)

const dumpVersion = 1

type Dump struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`

	Tasks      []model.Task         `json:"tasks"`
	Projects   []model.Project      `json:"projects"`
	Templates  []model.Template     `json:"templates"`
	References []model.Reference    `json:"references"`
	Archive    []model.ArchivedTask `json:"archive"`
	Settings   model.Settings       `json:"settings"`
}

func NewDump(now time.Time) Dump {
	return Dump{Version: dumpVersion, ExportedAt: now}
}

func Export(w io.Writer, d Dump) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func Import(r io.Reader) (Dump, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dump{}, fmt.Errorf("decode dump: %w", err)
	}
	if d.Version > dumpVersion {
		return Dump{}, fmt.Errorf("dump version %d is newer than supported %d", d.Version, dumpVersion)
	}
	for i := range d.Tasks {
		d.Tasks[i].Normalize()
	}
	for i := range d.Projects {
		d.Projects[i].Normalize()
	}
	return d, nil
}
