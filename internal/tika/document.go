package tika

// Document is one extraction unit: a source file plus the raw tool output
// and the content/metadata derived from it. The zero fields of a freshly
// created Document stay untouched until a batch pass reaches it.
type Document struct {
	name       string
	sourcePath string
	password   string
	rawOutput  string
	content    string
	metadata   MetadataSink
}

// NewDocument creates a document. The name is its identity within a batch.
func NewDocument(name, sourcePath string) *Document {
	return &Document{name: name, sourcePath: sourcePath}
}

func (d *Document) Name() string { return d.name }

func (d *Document) SourcePath() string { return d.sourcePath }

func (d *Document) SetSourcePath(path string) { d.sourcePath = path }

func (d *Document) Password() string { return d.password }

func (d *Document) SetPassword(pwd string) { d.password = pwd }

// RawOutput is the unparsed stdout of the extraction tool, set once per
// execution pass.
func (d *Document) RawOutput() string { return d.rawOutput }

func (d *Document) SetRawOutput(raw string) { d.rawOutput = raw }

func (d *Document) Content() string { return d.content }

func (d *Document) SetContent(content string) { d.content = content }

func (d *Document) Metadata() MetadataSink { return d.metadata }

func (d *Document) SetMetadata(m MetadataSink) { d.metadata = m }
