package xliff

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/jsonloc/pkg/resource"
)

// Version is the XLIFF version written by Marshal.
const Version = "1.2"

type document struct {
	XMLName xml.Name `xml:"xliff"`
	Version string   `xml:"version,attr"`
	Files   []file   `xml:"file"`
}

type file struct {
	Original    string `xml:"original,attr,omitempty"`
	SourceLang  string `xml:"source-language,attr"`
	TargetLang  string `xml:"target-language,attr,omitempty"`
	ProductName string `xml:"product-name,attr,omitempty"`
	DataType    string `xml:"datatype,attr,omitempty"`
	Flavor      string `xml:"x-flavor,attr,omitempty"`
	Units       []unit `xml:"body>trans-unit"`
}

type unit struct {
	ID       string  `xml:"id,attr"`
	ResName  string  `xml:"resname,attr,omitempty"`
	ResType  string  `xml:"restype,attr,omitempty"`
	DataType string  `xml:"datatype,attr,omitempty"`
	Flavor   string  `xml:"x-flavor,attr,omitempty"`
	Index    string  `xml:"x-index,attr,omitempty"`
	Source   string  `xml:"source"`
	Target   *target `xml:"target,omitempty"`
	Note     string  `xml:"note,omitempty"`
}

type target struct {
	State string `xml:"state,attr,omitempty"`
	Text  string `xml:",chardata"`
}

// Parse decodes an XLIFF 1.2 document into resources, in document order.
func Parse(data []byte) ([]resource.Resource, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if doc.Version != "" && !strings.HasPrefix(doc.Version, "1.") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, doc.Version)
	}

	var out []resource.Resource
	for _, f := range doc.Files {
		for _, u := range f.Units {
			out = append(out, f.resource(u))
		}
	}
	return out, nil
}

func (f file) resource(u unit) resource.Resource {
	r := resource.Resource{
		ResType:      u.ResType,
		Project:      f.ProductName,
		Key:          u.ResName,
		SourceLocale: f.SourceLang,
		Source:       u.Source,
		TargetLocale: f.TargetLang,
		DataType:     f.DataType,
		Flavor:       f.Flavor,
		PathName:     f.Original,
		Comment:      u.Note,
		State:        resource.StateNew,
	}
	if r.ResType == "" {
		r.ResType = resource.TypeString
	}
	if r.Key == "" {
		r.Key = u.Source
		r.AutoKey = true
	}
	if u.DataType != "" {
		r.DataType = u.DataType
	}
	if u.Flavor != "" {
		r.Flavor = u.Flavor
	}
	if u.Index != "" {
		r.Index, _ = strconv.Atoi(u.Index)
	}
	if u.Target != nil {
		r.Target = u.Target.Text
		switch {
		case u.Target.State != "":
			r.State = u.Target.State
		case r.Target != "":
			r.State = resource.StateTranslated
		}
	}
	return r
}

type groupKey struct {
	path, project, target string
}

// Marshal encodes resources as an XLIFF 1.2 document. Resources are grouped
// into one <file> per source path, project and target locale, in order of
// first appearance.
func Marshal(resources []resource.Resource) ([]byte, error) {
	doc := document{Version: Version}
	index := make(map[groupKey]int)

	for _, r := range resources {
		k := groupKey{r.PathName, r.Project, r.TargetLocale}
		i, ok := index[k]
		if !ok {
			i = len(doc.Files)
			index[k] = i
			doc.Files = append(doc.Files, file{
				Original:    r.PathName,
				SourceLang:  r.SourceLocale,
				TargetLang:  r.TargetLocale,
				ProductName: r.Project,
				DataType:    r.DataType,
			})
		}
		f := &doc.Files[i]

		u := unit{
			ID:      strconv.Itoa(len(f.Units) + 1),
			ResName: r.Key,
			ResType: r.ResType,
			Source:  r.Source,
			Flavor:  r.Flavor,
			Note:    r.Comment,
		}
		if r.DataType != f.DataType {
			u.DataType = r.DataType
		}
		if r.Target != "" || r.TargetLocale != "" {
			u.Target = &target{State: r.State, Text: r.Target}
		}
		f.Units = append(f.Units, u)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
