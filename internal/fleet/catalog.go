package fleet

import "github.com/cargoplan/loadplanner/internal/model"

// BuiltinCatalog returns the default truck catalog (cm/kg), grounded on
// the reference implementation's preset truck-spec table: a light van
// up through a heavy semi-trailer and a specialty lowbed.
func BuiltinCatalog() []model.TruckSpecs {
	inv := model.DefaultInventory()
	specs := make([]model.TruckSpecs, len(inv.Trucks))
	for i, preset := range inv.Trucks {
		specs[i] = preset.ToTruckSpecs()
	}
	return specs
}
