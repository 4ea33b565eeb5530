package models

// Coordinates is a WGS84 point. A point may come from EXIF GPS tags or from
// a recognized landmark; a landmark location always wins over EXIF.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lon float64 `json:"lon" bson:"lon"`
}

// Annotation is a single recognition result: a landmark, a label or a web
// entity, depending on which list of VisionResult it sits in.
type Annotation struct {
	Description string
	Score       float64
	Location    *Coordinates
}

// VisionResult holds the annotation lists returned by the recognition
// service, in the order the service ranked them. An unconfigured service
// yields the zero value.
type VisionResult struct {
	Landmarks   []Annotation
	Labels      []Annotation
	WebEntities []Annotation
}

// Candidate is the working title produced by the fallback cascade. A zero
// Confidence means no tier assigned one.
type Candidate struct {
	Title       string
	Confidence  float64
	Coordinates *Coordinates
}

// PlaceRecord is the response body of POST /v1/identify. Pointer fields
// serialize as null when the corresponding enrichment step found nothing;
// that is a valid terminal state, not an error.
type PlaceRecord struct {
	Title       *string      `json:"title" bson:"title"`
	Country     *string      `json:"country" bson:"country"`
	Description string       `json:"description" bson:"description"`
	Coordinates *Coordinates `json:"coordinates" bson:"coordinates"`
	Confidence  *float64     `json:"confidence" bson:"confidence"`
	WikiURL     *string      `json:"wiki_url" bson:"wiki_url"`
	ImageCredit *string      `json:"image_credit" bson:"image_credit"`
	YearBuilt   *string      `json:"year_built" bson:"year_built"`
	Architect   *string      `json:"architect" bson:"architect"`
	Mood        string       `json:"mood" bson:"mood"`
	EchoOfTime  string       `json:"echo_of_time" bson:"echo_of_time"`
	Sources     []string     `json:"sources" bson:"sources"`
}
