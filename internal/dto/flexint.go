package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotAnInteger reports a value that is neither a JSON number nor a
// numeric string.
var ErrNotAnInteger = errors.New("not a valid integer")

// FlexInt decodes from either a JSON number or a numeric string. The pay
// rate arrives as a string when submitted from an HTML form and as a number
// from API callers, so both must parse.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotAnInteger, s)
	}

	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}
