package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cloudguide/internal/errors"
)

// readInput decodes a JSON or YAML document into v. "-" reads stdin.
// YAML is normalized through JSON so custom JSON decoders still apply.
func readInput(path string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("input file", path)
		}
		return errors.Wrapf(errors.TypeInput, err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.Parsing("invalid YAML in "+path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return errors.Parsing("unsupported YAML in "+path, err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Parsing("invalid input in "+path, err)
	}
	return nil
}
