package location

// Sample facilities the system knows gateway ports for.
const (
	ShanghaiFactory = "Shanghai Factory ABC"
	HamburgFactory  = "Hamburger Factory ABC"
)

// Sample gateway ports.
const (
	ShanghaiPort = "Shanghai Port"
	HamburgPort  = "Hamburger Port"
)

// Only these facilities have known gateways; everything else has to be
// added by hand.
var defaultConnections = map[string][]Connection{
	ShanghaiFactory: {
		{PortName: ShanghaiPort, Distance: "45 km", HasTruckService: true, TruckingCost: 350, TransitHours: 2, IsDefault: true},
	},
	HamburgFactory: {
		{PortName: HamburgPort, Distance: "30 km", HasTruckService: true, TruckingCost: 400, TransitHours: 1, IsDefault: true},
	},
}

// Ports that are reachable but only surface on manual query. PortName is
// filled in by the caller.
var extraPorts = map[string]Connection{
	"Nanjing":      {Distance: "280 km", HasTruckService: true, TruckingCost: 600, TransitHours: 5},
	"Nanjing Port": {Distance: "280 km", HasTruckService: true, TruckingCost: 600, TransitHours: 5},
	"Xitang":       {Distance: "80 km", HasTruckService: false},
	"Xitang Port":  {Distance: "80 km", HasTruckService: false},
	"Cheese":       {Distance: "120 km", HasTruckService: true, TruckingCost: 550, TransitHours: 3},
	"Cheese Port":  {Distance: "120 km", HasTruckService: true, TruckingCost: 550, TransitHours: 3},
	"Fish":         {Distance: "90 km", HasTruckService: false},
	"Fish Port":    {Distance: "90 km", HasTruckService: false},
}

type catalog struct{}

// NewCatalog returns a Repository over the built-in gateway tables.
func NewCatalog() Repository {
	return catalog{}
}

func (catalog) Defaults(facility string) []Connection {
	conns, ok := defaultConnections[facility]
	if !ok {
		return nil
	}
	return append([]Connection(nil), conns...)
}

func (catalog) Find(name string) (Connection, error) {
	c, ok := extraPorts[name]
	if !ok {
		return Connection{}, ErrUnknown
	}
	return c, nil
}
