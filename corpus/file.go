package corpus

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// fileDocument is the on-disk format of a corpus file.
type fileDocument struct {
	Surnames   []string `json:"surnames"`
	GivenNames []string `json:"given_names"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

// LoadFile reads a corpus file. JSON and YAML content are both accepted.
// An error is returned if the file can't be read or either pool is missing or empty.
func LoadFile(path string) (*Corpus, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading name corpus file %q", path)
	}
	doc := fileDocument{}
	if err = yaml.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(err, "error parsing name corpus file %q", path)
	}
	c := New(doc.Surnames, doc.GivenNames, SourceFile+":"+path)
	if !c.IsUsable() {
		return nil, errors.Errorf("name corpus file %q does not contain both surnames and given_names", path)
	}
	return c, nil
}

// SaveFile writes c to path with updated_at set from now.
// Non-ASCII characters are written literally.
func SaveFile(path string, c *Corpus, now time.Time) error {
	doc := fileDocument{
		Surnames:   c.Surnames(),
		GivenNames: c.GivenNames(),
		UpdatedAt:  now.Format(time.RFC3339),
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "error encoding name corpus")
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "error writing name corpus file %q", path)
	}
	return nil
}
