package datasets

type DataSource struct {
	Identifier string
	Region     string
	Provider   Provider
	Datasets   []DataSet
}

type DataSet struct {
	Identifier    string
	DataSourceRef string `yaml:"-"`

	Provider Provider `yaml:"-"`

	// Source is a zip archive, a directory of .txt tables or an http(s) URL
	Source string
	Output OutputFiles

	SupportedObjects SupportedObjects

	// CRS overrides the named crs written to the output; an empty string
	// leaves it out
	CRS *string
}

type Provider struct {
	Name    string
	Website string
}

type OutputFiles struct {
	Routes string
	Stops  string
}

type SupportedObjects struct {
	Routes bool
	Stops  bool
}
