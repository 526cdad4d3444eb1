// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a level file. Files ending in .json are authored levels,
// everything else is expected in the compiled form.
func Load(path string) ([]CellData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data []CellData
	if isJSON(path) {
		data, err = DecodeJSON(bytes.NewReader(b))
	} else {
		data, err = UnmarshalBinary(b)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return data, nil
}

// Save writes data to path in the form Load expects for it.
func Save(path string, data []CellData) error {
	var b []byte
	if isJSON(path) {
		var buf bytes.Buffer
		if err := EncodeJSON(&buf, data); err != nil {
			return err
		}
		b = buf.Bytes()
	} else {
		b = MarshalBinary(data)
	}
	return errors.Wrapf(os.WriteFile(path, b, 0o644), "save %s", path)
}
