package addon

import "errors"

// ID identifies an additional service
type ID string

// Known additional services.
const (
	TruckingOrigin ID = "trucking_origin"
	RailOrigin     ID = "rail_origin"
	CustomsExport  ID = "customs_export"
	Insurance      ID = "insurance"
	Eco            ID = "eco"
	CustomsImport  ID = "customs_import"
	TruckingDest   ID = "trucking_dest"
	RailDest       ID = "rail_dest"
)

// Category groups services by the part of the journey they cover
type Category string

// valid categories
const (
	Origin      Category = "ORIGIN"
	Journey     Category = "JOURNEY"
	Destination Category = "DESTINATION"
)

// Kind describes what a service does
type Kind string

// valid kinds
const (
	Customs   Kind = "customs"
	Transport Kind = "transport"
	Extra     Kind = "addon"
)

// Addon is an entry of the additional service catalog
type Addon struct {
	ID          ID       `json:"id"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Benefit     string   `json:"benefit"`
	Price       int      `json:"price"`
	Kind        Kind     `json:"type"`
	Promoted    bool     `json:"promoted"`
}

// ErrUnknown is used when an additional service can't be found
var ErrUnknown = errors.New("unknown additional service")

var catalog = []Addon{
	{ID: TruckingOrigin, Category: Origin, Title: "Origin Trucking (Export)", Description: "Pickup from shipper facility to port.", Benefit: "Door-to-Port", Price: 450, Kind: Transport},
	{ID: RailOrigin, Category: Origin, Title: "Origin Rail Service", Description: "Eco-friendly inland transport to port.", Benefit: "Eco & Cost", Price: 300, Kind: Transport},
	{ID: CustomsExport, Category: Origin, Title: "Export Customs", Description: "Export filing with local authorities.", Benefit: "Compliance", Price: 120, Kind: Customs, Promoted: true},

	{ID: Insurance, Category: Journey, Title: "Value Protect", Description: "Extended cargo liability coverage.", Benefit: "Safety", Price: 45, Kind: Extra},
	{ID: Eco, Category: Journey, Title: "Eco Delivery", Description: "Reduce carbon footprint with biofuel.", Benefit: "Sustainability", Price: 250, Kind: Extra, Promoted: true},

	{ID: CustomsImport, Category: Destination, Title: "Import Customs", Description: "Customs entry at destination.", Benefit: "Clearance", Price: 150, Kind: Customs, Promoted: true},
	{ID: TruckingDest, Category: Destination, Title: "Destination Trucking", Description: "Final mile delivery to consignee door.", Benefit: "Port-to-Door", Price: 550, Kind: Transport},
	{ID: RailDest, Category: Destination, Title: "Destination Rail", Description: "Long-haul inland transport from port.", Benefit: "Long-haul", Price: 380, Kind: Transport},
}

// Catalog returns the additional services in display order.
func Catalog() []Addon {
	return append([]Addon(nil), catalog...)
}

// Find returns the catalog entry for id.
func Find(id ID) (Addon, error) {
	for _, a := range catalog {
		if a.ID == id {
			return a, nil
		}
	}
	return Addon{}, ErrUnknown
}
