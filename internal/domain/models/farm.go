package models

// Crop represents a planted crop tracked on the dashboard.
type Crop struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PlantedOn       string `json:"plantedOn"`
	ExpectedHarvest string `json:"expectedHarvest"`
	Status          string `json:"status"`
	Field           string `json:"field"`
}

// Field represents one physical plot of land.
type Field struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Crop   string  `json:"crop"`
	Area   float64 `json:"area"`
	Status string  `json:"status"`
}

// Animal represents one head of livestock.
type Animal struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Breed   string `json:"breed"`
	Gender  string `json:"gender"`
	DOB     string `json:"dob"`
	Status  string `json:"status"`
	Purpose string `json:"purpose,omitempty"`
}
