package logging

// Field names shared by all log entries.
const (
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldEncoding    = "encoding"
	FieldDateFormat  = "date_format"
	FieldWindow      = "slice"
	FieldFieldMap    = "field_map"
	FieldAccountType = "qif_type"
	FieldPreset      = "company"
	FieldRow         = "row"
	FieldFields      = "fields"
	FieldCount       = "count"
	FieldRecords     = "records"
	FieldSkipped     = "skipped"
	FieldNet         = "net"
)
