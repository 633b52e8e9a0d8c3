package temporal

// Carrier business-model categories. Codes outside the table map to "other".
const (
	CarrierLegacy   = "legacy"
	CarrierHybrid   = "hybrid"
	CarrierLCC      = "lcc"
	CarrierULCC     = "ulcc"
	CarrierRegional = "regional"
	CarrierOther    = "other"
)

var carrierCategories = map[string]string{
	// Legacy network carriers
	"AA": CarrierLegacy,
	"DL": CarrierLegacy,
	"UA": CarrierLegacy,
	// Hybrid carriers
	"AS": CarrierHybrid,
	"B6": CarrierHybrid,
	"HA": CarrierHybrid,
	// Low-cost
	"WN": CarrierLCC,
	// Ultra low-cost
	"NK": CarrierULCC,
	"F9": CarrierULCC,
	"G4": CarrierULCC,
	"SY": CarrierULCC,
	// Regional affiliates
	"9E": CarrierRegional,
	"MQ": CarrierRegional,
	"OH": CarrierRegional,
	"OO": CarrierRegional,
	"YX": CarrierRegional,
	"YV": CarrierRegional,
	"EV": CarrierRegional,
	"QX": CarrierRegional,
	"ZW": CarrierRegional,
	"PT": CarrierRegional,
}

// CarrierCategory returns the business-model bucket for a carrier code.
func CarrierCategory(code string) string {
	if cat, ok := carrierCategories[code]; ok {
		return cat
	}
	return CarrierOther
}

// Slot-controlled airports (FAA Level 2/3)
var slotControlled = map[string]bool{
	"JFK": true,
	"LGA": true,
	"EWR": true,
	"DCA": true,
}

// IsSlotControlled reports whether the airport operates under slot controls.
func IsSlotControlled(code string) bool {
	return slotControlled[code]
}
