package tika

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// metadataSchema is the shape of the tool's --json output: one flat object
// whose values are scalars or arrays of scalars.
const metadataSchema = `{
	"type": "object",
	"additionalProperties": {
		"anyOf": [
			{"type": ["string", "number", "boolean", "null"]},
			{"type": "array", "items": {"type": ["string", "number", "boolean", "null"]}}
		]
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func flatObjectSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("metadata.json", strings.NewReader(metadataSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("metadata.json")
	})
	return compiledSchema, schemaErr
}

// parseMetadataJSON reads a flat JSON metadata object and appends every
// field-value pair to sink. Array values add one entry per element under the
// same field name.
func parseMetadataJSON(raw string, sink MetadataSink, strict bool) error {
	if strict {
		schema, err := flatObjectSchema()
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return err
		}
		if err := schema.Validate(v); err != nil {
			return fmt.Errorf("metadata object rejected: %w", err)
		}
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	// The object is decoded token-wise so fields land in the sink in
	// document order instead of map order.
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected field name, got %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				sink.Add(key, scalarString(item))
			}
		default:
			sink.Add(key, scalarString(v))
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	// The object must be the whole output. A Java stack trace appended after
	// partial stdout would otherwise slip through.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return fmt.Errorf("trailing data after metadata object: %v", tok)
	}
	return nil
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// parseStructuredXML walks an XML document token by token, adding every
// <meta name content> pair to sink and returning the flattened text of the
// first <body> element. hasBody is false when no body element exists.
func parseStructuredXML(raw string, sink MetadataSink) (content string, hasBody bool, err error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Entity = xml.HTMLEntity

	var body strings.Builder
	bodyDepth := 0 // >0 while inside the first body element
	bodySeen := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "meta":
				if name, value, ok := metaAttrs(t.Attr); ok {
					sink.Add(name, value)
				}
			case "body":
				if !bodySeen {
					bodySeen = true
					bodyDepth = 1
					continue
				}
			}
			if bodyDepth > 0 {
				bodyDepth++
			}
		case xml.EndElement:
			if bodyDepth > 0 {
				bodyDepth--
			}
		case xml.CharData:
			if bodyDepth > 0 {
				body.Write(t)
			}
		}
	}
	return flattenText(body.String()), bodySeen, nil
}

func metaAttrs(attrs []xml.Attr) (name, value string, ok bool) {
	for _, a := range attrs {
		switch a.Name.Local {
		case "name":
			name = a.Value
		case "content":
			value = a.Value
		}
	}
	return name, value, name != ""
}

// parseStructuredHTML parses an HTML document, adding every <meta> name and
// content attribute pair to sink and returning the flattened text of the
// first <body> element.
func parseStructuredHTML(raw string, sink MetadataSink) (content string, hasBody bool, err error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", false, err
	}

	var bodyNode *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Meta:
				var name, value string
				for _, a := range n.Attr {
					switch a.Key {
					case "name":
						name = a.Val
					case "content":
						value = a.Val
					}
				}
				if name != "" {
					sink.Add(name, value)
				}
			case atom.Body:
				if bodyNode == nil {
					bodyNode = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if bodyNode == nil {
		return "", false, nil
	}
	return collectText(bodyNode), true, nil
}

// collectText extracts all text from a node subtree, markup stripped,
// whitespace collapsed to single spaces.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return flattenText(sb.String())
}

func flattenText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
