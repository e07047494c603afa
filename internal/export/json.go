package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const (
	exportType = "mechanical_engineering_calculation"
	version    = "1.0"
	software   = "ShaftGear"
)

type exportInfo struct {
	Timestamp  string `json:"timestamp"`
	ExportType string `json:"export_type"`
	Kind       string `json:"kind"`
	Version    string `json:"version"`
}

type metadata struct {
	Units           string    `json:"units"`
	CalculationDate time.Time `json:"calculation_date"`
	Software        string    `json:"software"`
}

type jsonDocument struct {
	ExportInfo exportInfo `json:"export_info"`
	Title      string     `json:"title"`
	Project    string     `json:"project,omitempty"`
	Author     string     `json:"author,omitempty"`
	Summary    []Field    `json:"summary,omitempty"`
	Parameters []Field    `json:"parameters"`
	Results    []Field    `json:"results"`
	Material   []Field    `json:"material,omitempty"`
	Checks     []Field    `json:"checks,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Metadata   metadata   `json:"calculation_metadata"`
}

func WriteJSON(w io.Writer, doc Document) error {
	out := jsonDocument{
		ExportInfo: exportInfo{
			Timestamp:  doc.Generated.Format("20060102_150405"),
			ExportType: exportType,
			Kind:       doc.Kind,
			Version:    version,
		},
		Title:      doc.Title,
		Project:    doc.Project,
		Author:     doc.Author,
		Summary:    doc.Summary,
		Parameters: doc.Parameters,
		Results:    doc.Results,
		Material:   doc.Material,
		Checks:     doc.Checks,
		Notes:      doc.Notes,
		Metadata: metadata{
			Units:           "SI (metric)",
			CalculationDate: doc.Generated,
			Software:        software,
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func ParseJSON(r io.Reader) (Document, error) {
	var in jsonDocument
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Document{}, fmt.Errorf("read json: %w", err)
	}
	if in.ExportInfo.ExportType != exportType {
		return Document{}, fmt.Errorf("read json: unexpected export type %q", in.ExportInfo.ExportType)
	}
	return Document{
		Kind:       in.ExportInfo.Kind,
		Title:      in.Title,
		Project:    in.Project,
		Author:     in.Author,
		Generated:  in.Metadata.CalculationDate,
		Summary:    in.Summary,
		Parameters: in.Parameters,
		Results:    in.Results,
		Material:   in.Material,
		Checks:     in.Checks,
		Notes:      in.Notes,
	}, nil
}
