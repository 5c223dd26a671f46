package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Snowflake is a Discord id. Config files may write it as a number or a string.
type Snowflake uint64

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

func (s Snowflake) IsZero() bool {
	return s == 0
}

func (s *Snowflake) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		*s = 0
		return nil
	}
	return s.parse(raw)
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(s))
}

func (s *Snowflake) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" || value.Value == "" {
		*s = 0
		return nil
	}
	return s.parse(value.Value)
}

func (s *Snowflake) parse(raw string) error {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snowflake %q: %w", raw, err)
	}
	*s = Snowflake(id)
	return nil
}

// Seconds is a duration written as a (possibly fractional) number of seconds.
type Seconds float64

func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
