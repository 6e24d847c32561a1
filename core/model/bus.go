package model

// BusCategory identifies the role a bus plays in the distribution network.
type BusCategory string

const (
	// CategoryGridConnection is the point of common coupling with the
	// upstream grid. Buses of this category carry no battery.
	CategoryGridConnection BusCategory = "PCC"
	CategoryCommunity      BusCategory = "Community"
	CategoryResidential    BusCategory = "Residential"
)

// BusConfig describes a single bus of the network. A config is immutable once
// read for a computation; updates replace entries in the registry wholesale.
type BusConfig struct {
	BusNumber       int         `json:"bus_number"`
	Category        BusCategory `json:"category"`
	HouseCount      int         `json:"house_count"`
	SolarPanelCount int         `json:"solar_panel_count"`
	EVCapacityKW    float64     `json:"ev_capacity_kw"`
}
