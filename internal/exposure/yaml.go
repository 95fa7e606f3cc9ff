/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package exposure

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts the same forms as Coerce: 8, 0.5, "1/400".
func (e *Exposure) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := Coerce(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*e = parsed
	return nil
}

