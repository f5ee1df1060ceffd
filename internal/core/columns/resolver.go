// Package columns maps logical event fields onto warehouse column names.
package columns

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrConfiguration marks a deployment misconfiguration of the column mapping.
	ErrConfiguration = errors.New("invalid column configuration")

	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tablePattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)
)

// Semantic column roles. Values are the keys of the mapping passed to Resolve.
const (
	RoleTable          = "table"
	RoleGCID           = "gcid"
	RoleEventTS        = "event_ts"
	RoleExperimentID   = "experiment_id"
	RoleExperimentName = "experiment_name"
	RoleVariant        = "variant"
	RoleVariantBlob    = "variant_blob"
	RoleEventName      = "event_name"
	RolePartitionYear  = "partition_year"
	RolePartitionMonth = "partition_month"
	RolePartitionDay   = "partition_day"
)

// Encoding describes how the experiment id column stores its value.
type Encoding string

const (
	EncodingBlob   Encoding = "blob"
	EncodingScalar Encoding = "scalar"
)

// ConfigurationError names the role and the value that failed validation.
type ConfigurationError struct {
	Role   string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %q: %s", e.Role, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s identifier %q", e.Role, e.Value)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Columns is a validated semantic-to-physical mapping. Every non-empty field
// matched the identifier allow-list, so it is safe to interpolate into SQL.
// The zero value is not valid; obtain one through Resolve.
type Columns struct {
	Table          string
	GCID           string
	EventTS        string
	ExperimentID   string
	ExperimentName string
	Variant        string
	VariantBlob    string
	EventName      string
	PartitionYear  string
	PartitionMonth string
	PartitionDay   string

	Encoding Encoding
}

// Partitioned reports whether the three partition columns are configured.
func (c Columns) Partitioned() bool {
	return c.PartitionYear != "" && c.PartitionMonth != "" && c.PartitionDay != ""
}

var (
	requiredRoles = []string{RoleGCID, RoleExperimentID, RoleExperimentName, RoleVariant}
	optionalRoles = []string{RoleEventTS, RoleVariantBlob, RoleEventName, RolePartitionYear, RolePartitionMonth, RolePartitionDay}
)

// Resolve validates mapping and returns the resolved column set.
// The table must be 1-3 dot-separated identifiers; every column a single identifier.
// Optional roles may be empty. encoding defaults to EncodingBlob.
func Resolve(mapping map[string]string, encoding Encoding) (Columns, error) {
	get := func(role string) string { return strings.TrimSpace(mapping[role]) }

	table := get(RoleTable)
	if err := ValidateTable(table); err != nil {
		return Columns{}, err
	}

	for _, role := range requiredRoles {
		if err := ValidateIdentifier(role, get(role)); err != nil {
			return Columns{}, err
		}
	}
	for _, role := range optionalRoles {
		if v := get(role); v != "" {
			if err := ValidateIdentifier(role, v); err != nil {
				return Columns{}, err
			}
		}
	}

	switch encoding {
	case "":
		encoding = EncodingBlob
	case EncodingBlob, EncodingScalar:
	default:
		return Columns{}, &ConfigurationError{Role: "experiment_id_encoding", Value: string(encoding), Reason: "must be blob or scalar"}
	}

	cols := Columns{
		Table:          table,
		GCID:           get(RoleGCID),
		EventTS:        get(RoleEventTS),
		ExperimentID:   get(RoleExperimentID),
		ExperimentName: get(RoleExperimentName),
		Variant:        get(RoleVariant),
		VariantBlob:    get(RoleVariantBlob),
		EventName:      get(RoleEventName),
		PartitionYear:  get(RolePartitionYear),
		PartitionMonth: get(RolePartitionMonth),
		PartitionDay:   get(RolePartitionDay),
		Encoding:       encoding,
	}

	partitionSet := 0
	for _, v := range []string{cols.PartitionYear, cols.PartitionMonth, cols.PartitionDay} {
		if v != "" {
			partitionSet++
		}
	}
	if partitionSet != 0 && partitionSet != 3 {
		return Columns{}, &ConfigurationError{
			Role:   "partition",
			Value:  fmt.Sprintf("%s,%s,%s", cols.PartitionYear, cols.PartitionMonth, cols.PartitionDay),
			Reason: "partition_year, partition_month and partition_day must be set together",
		}
	}
	if partitionSet == 0 && cols.EventTS == "" {
		return Columns{}, &ConfigurationError{Role: RoleEventTS, Value: "", Reason: "required when partition columns are not configured"}
	}

	return cols, nil
}

// ValidateIdentifier checks a single-identifier column name.
func ValidateIdentifier(role, value string) error {
	if !identifierPattern.MatchString(value) {
		return &ConfigurationError{Role: role, Value: value}
	}
	return nil
}

// ValidateTable checks a 1-3 part dotted table name.
func ValidateTable(value string) error {
	if !tablePattern.MatchString(value) {
		return &ConfigurationError{Role: RoleTable, Value: value, Reason: "invalid table name"}
	}
	return nil
}
