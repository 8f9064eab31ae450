package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"stub2hdr/internal/decl"
	"stub2hdr/internal/emit"
	"stub2hdr/internal/source"
)

type ParamOutput struct {
	Type     string `json:"type" yaml:"type"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Variadic bool   `json:"variadic,omitempty" yaml:"variadic,omitempty"`
}

type ItemOutput struct {
	Kind        string        `json:"kind" yaml:"kind"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Line        uint32        `json:"line" yaml:"line"`
	ReturnType  string        `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Params      []ParamOutput `json:"params,omitempty" yaml:"params,omitempty"`
	Declaration string        `json:"declaration" yaml:"declaration"`
}

// SigsOutput is the dump of one file's normalized items.
type SigsOutput struct {
	File  string       `json:"file" yaml:"file"`
	Items []ItemOutput `json:"items" yaml:"items"`
	Count int          `json:"count" yaml:"count"`
}

// BuildSigsOutput converts items into their serializable form.
func BuildSigsOutput(file *source.File, fs *source.FileSet, items []decl.Item, spacing emit.ParenSpacing) SigsOutput {
	out := SigsOutput{
		File:  DisplayPath(fs, file, PathModeAuto),
		Items: make([]ItemOutput, 0, len(items)),
	}
	for _, it := range items {
		start, _ := fs.Resolve(it.Span)
		row := ItemOutput{
			Kind:        it.Kind.String(),
			Name:        it.Name(),
			Line:        start.Line,
			Declaration: emit.Item(it, spacing),
		}
		if it.Sig != nil {
			row.ReturnType = decl.Render(it.Sig.ReturnType)
			for _, p := range it.Sig.Params {
				po := ParamOutput{Name: p.Name, Variadic: p.Variadic}
				if p.Variadic {
					po.Type = "..."
				} else {
					po.Type = decl.Render(p.Type)
				}
				row.Params = append(row.Params, po)
			}
		}
		out.Items = append(out.Items, row)
	}
	out.Count = len(out.Items)
	return out
}

// FormatSigsPretty prints one line per item: position, kind and declaration.
func FormatSigsPretty(w io.Writer, out SigsOutput) error {
	for _, it := range out.Items {
		if _, err := fmt.Fprintf(w, "%s:%-4d %-11s %s\n", out.File, it.Line, it.Kind, it.Declaration); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d items\n", out.Count)
	return err
}

func FormatSigsJSON(w io.Writer, out SigsOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func FormatSigsYAML(w io.Writer, out SigsOutput) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}
