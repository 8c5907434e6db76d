package theme

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/mindmap/pkg/errors"
)

// Load reads a TOML theme file layered over [Default] and validates it.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Theme{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return Theme{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read theme %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML theme data layered over [Default] and validates it.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (Theme, error) {
	t := Default()
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return Theme{}, errs.Wrap(errs.ErrCodeInvalidTheme, err, "decode theme")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Theme{}, errs.New(errs.ErrCodeInvalidTheme, "unknown theme keys: %s", strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Encode writes t as TOML.
func Encode(w io.Writer, t Theme) error {
	return toml.NewEncoder(w).Encode(t)
}

// Marshal returns t as TOML.
func Marshal(t Theme) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
