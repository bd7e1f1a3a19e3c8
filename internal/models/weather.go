package models

// Snapshot is one decoded current-weather response. Every field is optional:
// a nil pointer (or nil slice) means the upstream omitted the key or sent null.
type Snapshot struct {
	Weather    []Condition  `json:"weather"`
	Coord      *Coordinates `json:"coord"`
	Base       *string      `json:"base"` // station info, internal upstream parameter
	Main       *Main        `json:"main"`
	Visibility *int         `json:"visibility"`
	Wind       *Wind        `json:"wind"`
	Clouds     *Clouds      `json:"clouds"`
	Dt         *float64     `json:"dt"` // observation time, epoch seconds
	Sys        *Sys         `json:"sys"`
	CityID     *int         `json:"id"`
	CityName   *string      `json:"name"`
	StatusCode *int         `json:"cod"`
}

type Condition struct {
	ID          *int    `json:"id"`
	Main        *string `json:"main"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type Coordinates struct {
	Lon *float64 `json:"lon"`
	Lat *float64 `json:"lat"`
}

// Main holds the core measurements. Temperatures are in Kelvin because the
// request never sets a units parameter.
type Main struct {
	TempKelvin    *float64 `json:"temp"`
	Pressure      *int     `json:"pressure"`
	Humidity      *int     `json:"humidity"`
	MinTempKelvin *float64 `json:"temp_min"`
	MaxTempKelvin *float64 `json:"temp_max"`
}

type Wind struct {
	Speed *float64 `json:"speed"`
	Deg   *int     `json:"deg"`
}

// Clouds.All is cloud coverage as a percentage.
type Clouds struct {
	All *int `json:"all"`
}

type Sys struct {
	Type    *int     `json:"type"`
	ID      *int     `json:"id"`
	Message *float64 `json:"message"`
	Country *string  `json:"country"`
	Sunrise *float64 `json:"sunrise"`
	Sunset  *float64 `json:"sunset"`
}
