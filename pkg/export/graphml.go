package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/dd0wney/cluso-ontograph/pkg/graph"
)

const graphmlNamespace = "http://graphml.graphdrawing.org/xmlns"

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// attrType returns the GraphML type of one attribute value. nil has none.
func attrType(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case int64:
		return "long"
	case float64:
		return "double"
	case string:
		return "string"
	}
	return ""
}

// mergeTypes widens long and double to double; any other mix is string.
func mergeTypes(a, b string) string {
	switch {
	case a == "" || a == b:
		return b
	case b == "":
		return a
	case (a == "long" && b == "double") || (a == "double" && b == "long"):
		return "double"
	}
	return "string"
}

func formatValue(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		switch {
		case math.IsInf(x, 1):
			return "INF"
		case math.IsInf(x, -1):
			return "-INF"
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// writeGraphML writes g as an undirected GraphML document. Node
// attributes become typed keys; nil values are left out.
func writeGraphML(w io.Writer, g *graph.Graph, pretty bool) error {
	types := make(map[string]string)
	for _, id := range g.Nodes() {
		for k, v := range g.Attributes(id) {
			types[k] = mergeTypes(types[k], attrType(v))
		}
	}

	names := make([]string, 0, len(types))
	for name, typ := range types {
		if typ != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	doc := graphmlDoc{
		XMLNS: graphmlNamespace,
		Graph: graphmlGraph{EdgeDefault: "undirected"},
	}
	keyIDs := make(map[string]string, len(names))
	for i, name := range names {
		keyIDs[name] = "d" + strconv.Itoa(i)
		doc.Keys = append(doc.Keys, graphmlKey{ID: keyIDs[name], For: "node", Name: name, Type: types[name]})
	}

	for _, id := range g.Nodes() {
		node := graphmlNode{ID: id}
		for _, name := range names {
			v, ok := g.Attribute(id, name)
			if !ok || v == nil {
				continue
			}
			node.Data = append(node.Data, graphmlData{Key: keyIDs[name], Value: formatValue(v)})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{Source: e.A, Target: e.B})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if pretty {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode graphml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
