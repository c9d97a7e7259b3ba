package uploads

// Endpoint binds one upload route to the form field carrying the file and
// the optional metadata it records.
type Endpoint struct {
	Name           string
	Path           string
	FileField      string
	Fields         []Field
	SuccessMessage string
}

// JSONLogEndpoint accepts full game-session logs.
var JSONLogEndpoint = Endpoint{
	Name:      "json",
	Path:      "/upload-json",
	FileField: "jsonFile",
	Fields: []Field{
		FieldUserGender,
		FieldUserID,
		FieldFileType,
		FieldTotalEvents,
	},
	SuccessMessage: "file uploaded successfully",
}

// CSVLogEndpoint is the older CSV route; it records only userName.
var CSVLogEndpoint = Endpoint{
	Name:           "csv",
	Path:           "/upload-csv",
	FileField:      "csvFile",
	SuccessMessage: "CSV file uploaded successfully",
}

// DefaultEndpoints lists the routes the gateway serves.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{JSONLogEndpoint, CSVLogEndpoint}
}
