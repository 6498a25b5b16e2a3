package upstream

// Dataset is the subset of a published dataset index the site shows.
type Dataset struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary,omitempty"`
	URL         string   `json:"url,omitempty"`
	Type        string   `json:"type,omitempty"`
	Children    []string `json:"children,omitempty"`
	EntityCount int      `json:"entity_count"`
	TargetCount int      `json:"target_count"`
	LastChange  string   `json:"last_change,omitempty"`
	LastExport  string   `json:"last_export,omitempty"`
}

// Territory is a country or region as described by the static metadata.
type Territory struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	FullName       string   `json:"full_name,omitempty"`
	Region         string   `json:"region,omitempty"`
	Subregion      string   `json:"subregion,omitempty"`
	QID            string   `json:"qid,omitempty"`
	Parent         string   `json:"parent,omitempty"`
	See            []string `json:"see,omitempty"`
	IsCountry      bool     `json:"is_country"`
	IsHistoric     bool     `json:"is_historic"`
	IsJurisdiction bool     `json:"is_jurisdiction"`
}

type datasetIndex struct {
	Datasets []Dataset `json:"datasets"`
}

type territoryIndex struct {
	Territories []Territory `json:"territories"`
}
