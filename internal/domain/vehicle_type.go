package domain

// VehicleType is a catalog entry with its pricing modifier. The catalog is
// static configuration, not database state: providers quote base prices for
// a standard sedan and the modifier adjusts per vehicle class.
type VehicleType struct {
	ID                   int64
	Name                 string
	PriceModifierPercent float64
}

// VehicleTypes is the static vehicle-type catalog.
var VehicleTypes = map[int64]VehicleType{
	1: {ID: 1, Name: "automovil", PriceModifierPercent: 0},
	2: {ID: 2, Name: "motocicleta", PriceModifierPercent: -30},
	3: {ID: 3, Name: "camioneta", PriceModifierPercent: 15},
	4: {ID: 4, Name: "campero", PriceModifierPercent: 10},
	5: {ID: 5, Name: "microbus", PriceModifierPercent: 25},
}

// VehicleTypeByID looks up a vehicle type in the catalog.
func VehicleTypeByID(id int64) (VehicleType, bool) {
	vt, ok := VehicleTypes[id]
	return vt, ok
}
